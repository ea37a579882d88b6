package testsupport

import (
	"context"
	"testing"
	"time"

	"clipscout/internal/candidate"
	"clipscout/internal/config"
	"clipscout/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, opts ...store.Option) *store.Store {
	t.Helper()

	st, err := store.Open(cfg, opts...)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustInsert stores a candidate with the given url and gender.
func MustInsert(t testing.TB, st *store.Store, url string, gender candidate.Gender) *candidate.Candidate {
	t.Helper()

	c, err := st.Insert(context.Background(), candidate.NewCandidate{
		URL:      url,
		Username: "user",
		Gender:   gender,
	})
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return c
}

// SteppingClock returns a clock that advances by step on every call.
func SteppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}
