package utils

import "time"

// DayFormat is the canonical date-key layout used by all data sources.
const DayFormat = "2006-01-02"

// KcalsPerKg is the energy density used to convert weight change to
// calories (≈7700 kcal per kg of body mass).
const KcalsPerKg = 7700.0

// DaysPerWeek converts between daily and weekly rates.
const DaysPerWeek = 7.0

// StoreTimeout bounds goal store round-trips.
const StoreTimeout = 5 * time.Second

// SourceFetchTimeout bounds the initial dataset fetch.
const SourceFetchTimeout = 30 * time.Second
