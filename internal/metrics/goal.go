package metrics

// Goal is the user's target, persisted as-is in the goal store. Date
// is a YYYY-MM-DD string on the wire; nil fields mean "not set".
type Goal struct {
	Weight     *float64 `json:"weight"`
	Date       *string  `json:"date"`
	TargetRate *float64 `json:"targetRate"`
}

// IsZero reports whether no part of the goal is set.
func (g Goal) IsZero() bool {
	return g.Weight == nil && g.Date == nil && g.TargetRate == nil
}

// Validate checks the date field parses when present.
func (g Goal) Validate() error {
	if g.Date == nil {
		return nil
	}
	_, err := ParseDay(*g.Date)
	return err
}
