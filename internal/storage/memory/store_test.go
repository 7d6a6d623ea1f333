package memory

import (
	"bytes"
	"testing"
)

func TestStoreGetSet(t *testing.T) {
	s := NewStore()

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent", ok, err)
	}

	if err := s.Set("key", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := s.Get("key")
	if err != nil || !ok {
		t.Fatalf("Get(key) = ok %v, err %v; want present", ok, err)
	}
	if !bytes.Equal(got, []byte(`{"a":1}`)) {
		t.Errorf("Get(key) = %s, want {\"a\":1}", got)
	}
}

func TestStoreCopiesValues(t *testing.T) {
	s := NewStore()

	original := []byte("abc")
	if err := s.Set("key", original); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	original[0] = 'x'

	got, _, _ := s.Get("key")
	if string(got) != "abc" {
		t.Errorf("stored value mutated by caller: got %s, want abc", got)
	}

	got[0] = 'y'
	again, _, _ := s.Get("key")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: got %s, want abc", again)
	}
}
