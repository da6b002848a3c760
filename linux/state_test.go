package linux

import (
	"testing"
	"time"
)

func TestStatesPostFromLoop(t *testing.T) {
	s := newStates(1)
	go s.loop()
	defer s.close()

	var order []int
	s.post("outer", func() error {
		for i := 0; i < 64; i++ {
			i := i
			s.post("inner", func() error {
				order = append(order, i)
				return nil
			})
		}
		return nil
	})

	flushed := make(chan struct{})
	go func() {
		s.flush()
		close(flushed)
	}()
	select {
	case <-flushed:
	case <-time.After(time.Second):
		t.Fatal("loop stuck posting to itself")
	}
	if len(order) != 64 {
		t.Fatalf("ran %d ops, want 64", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("op %d ran at %d", v, i)
		}
	}
}

func TestStatesClosed(t *testing.T) {
	s := newStates(1)
	go s.loop()
	s.close()

	ran := false
	s.post("late", func() error {
		ran = true
		return nil
	})
	s.flush()
	if ran {
		t.Error("op ran after close")
	}
}
