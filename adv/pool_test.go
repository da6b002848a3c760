package adv

import "testing"

func TestPoolBudget(t *testing.T) {
	p := NewPool(8)
	a := p.Get(5)
	if a == nil {
		t.Fatal("Get(5) = nil")
	}
	if b := p.Get(4); b != nil {
		t.Fatal("Get(4) over budget succeeded")
	}
	b := p.Get(3)
	if b == nil {
		t.Fatal("Get(3) = nil")
	}
	p.Put(a)
	if p.Outstanding() != 3 || p.Buffers() != 1 {
		t.Errorf("outstanding = %d bytes in %d buffers", p.Outstanding(), p.Buffers())
	}
}

func TestPoolDoublePut(t *testing.T) {
	p := NewPool(0)
	a := p.Get(4)
	p.Put(a)
	p.Put(a)
	p.Put([]byte{1})
	p.Put(nil)
	if p.Outstanding() != 0 || p.Buffers() != 0 {
		t.Errorf("outstanding = %d bytes in %d buffers", p.Outstanding(), p.Buffers())
	}
	if p.Get(0) != nil {
		t.Errorf("Get(0) != nil")
	}
}
