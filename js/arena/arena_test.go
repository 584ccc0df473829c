package arena

import (
	"errors"
	"strings"
	"testing"
)

func TestSlabAlloc(t *testing.T) {
	a := New()
	s := NewSlab[int](a, 2)

	for i := 0; i < 10; i++ {
		if got := s.Alloc(i * 10); got != uint32(i) {
			t.Fatalf("Alloc returned index %d, want %d", got, i)
		}
	}
	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}
	if got := *s.At(3); got != 30 {
		t.Errorf("At(3) = %d, want 30", got)
	}

	off := s.AllocSlice([]int{7, 8, 9})
	if off != 10 {
		t.Errorf("AllocSlice offset = %d, want 10", off)
	}
	got := s.Slice(off, 3)
	if len(got) != 3 || got[0] != 7 || got[2] != 9 {
		t.Errorf("Slice = %v, want [7 8 9]", got)
	}
}

func TestResetRewindsAndKeepsCapacity(t *testing.T) {
	a := New()
	s := NewSlab[byte](a, 0)
	for i := 0; i < 1000; i++ {
		s.Alloc(byte(i))
	}
	capBefore := s.Cap()
	genBefore := a.Generation()

	a.Reset()

	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
	if s.Cap() != capBefore {
		t.Errorf("Cap() after Reset = %d, want %d", s.Cap(), capBefore)
	}
	if a.Generation() != genBefore+1 {
		t.Errorf("Generation() = %d, want %d", a.Generation(), genBefore+1)
	}

	st := a.Stats()
	if st.Resets != 1 || st.Items != 0 || st.Capacity != capBefore {
		t.Errorf("Stats() = %v", st)
	}
}

func TestCheck(t *testing.T) {
	a := New()
	gen := a.Generation()
	if err := a.Check(gen); err != nil {
		t.Fatalf("Check(current) = %v, want nil", err)
	}
	a.Reset()
	err := a.Check(gen)
	if !errors.Is(err, ErrStale) {
		t.Fatalf("Check(old) = %v, want ErrStale", err)
	}
}

func TestCorruptedAccessPanics(t *testing.T) {
	a := New()
	s := NewSlab[int](a, 0)
	s.Alloc(1)

	tests := []struct {
		name string
		fn   func()
	}{
		{"At", func() { s.At(5) }},
		{"Slice", func() { s.Slice(0, 4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if msg, ok := r.(string); !ok || !strings.Contains(msg, "corrupted") {
					t.Errorf("panic = %v, want corrupted message", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestAcquire(t *testing.T) {
	a := New()
	release := a.Acquire()
	if !a.InUse() {
		t.Fatal("InUse() = false after Acquire")
	}

	t.Run("reset while acquired panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		a.Reset()
	})

	t.Run("double acquire panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		a.Acquire()
	})

	release()
	if a.InUse() {
		t.Fatal("InUse() = true after release")
	}
	a.Reset()
}
