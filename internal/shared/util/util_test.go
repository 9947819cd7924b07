package util

import (
	"testing"
)

func TestSortedStringKeys(t *testing.T) {
	t.Parallel()

	m := map[string]int{"b": 2, "a": 1, "c": 3}
	keys := SortedStringKeys(m)
	expected := []string{"a", "b", "c"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Fatalf("expected %q at %d, got %q", key, i, keys[i])
		}
	}
}

func TestSortedStringKeysEmpty(t *testing.T) {
	t.Parallel()

	keys := SortedStringKeys(map[string]string{})
	if len(keys) != 0 {
		t.Fatalf("expected no keys, got %v", keys)
	}
}
