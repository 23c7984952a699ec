package store

import (
	"testing"

	"github.com/weightlens/weightlens/internal/config"
)

func TestNewGoalStore_DefaultsToMemory(t *testing.T) {
	s, err := NewGoalStore(config.StoreConfig{})
	if err != nil {
		t.Fatalf("NewGoalStore failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", s)
	}
}

func TestNewGoalStore_ExplicitMemory(t *testing.T) {
	s, err := NewGoalStore(config.StoreConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("NewGoalStore failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", s)
	}
}

func TestNewGoalStore_UnknownType(t *testing.T) {
	if _, err := NewGoalStore(config.StoreConfig{Type: "dynamo"}); err == nil {
		t.Error("expected error for unsupported store type")
	}
}
