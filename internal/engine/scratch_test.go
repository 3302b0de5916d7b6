package engine

import "testing"

func TestScratch_WriteReadRemove(t *testing.T) {
	s := NewScratch()
	s.Write(InputName, []byte("abc"))
	s.Write(OutputName, []byte("de"))

	if got, ok := s.Read(InputName); !ok || string(got) != "abc" {
		t.Fatalf("Read(input) = %q, %v", got, ok)
	}
	if s.Size() != 5 {
		t.Errorf("Size() = %d, want 5", s.Size())
	}

	s.Remove(InputName)
	s.Remove(InputName)
	s.Remove("never-written")

	if s.Has(InputName) {
		t.Error("input should be gone")
	}
	names := s.Names()
	if len(names) != 1 || names[0] != OutputName {
		t.Errorf("Names() = %v", names)
	}
}
