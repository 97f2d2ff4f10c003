package store

import "testing"

// OpenTest creates a Store backed by an in-memory database.
// This is only intended for use in tests.
func OpenTest(t *testing.T) *Store {
	t.Helper()
	s, err := openPath(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
