package contact

import "testing"

func TestIdAllocator_AllocAndReuse(t *testing.T) {
	alloc := NewIdAllocator()

	for want := 0; want < 3; want++ {
		if got := alloc.Alloc(); got != want {
			t.Fatalf("Alloc = %d, want %d", got, want)
		}
	}

	alloc.Free(1)
	alloc.Free(0)
	if alloc.InUse() != 1 {
		t.Errorf("InUse = %d, want 1", alloc.InUse())
	}

	// most recently released first
	if got := alloc.Alloc(); got != 0 {
		t.Errorf("Alloc = %d, want 0", got)
	}
	if got := alloc.Alloc(); got != 1 {
		t.Errorf("Alloc = %d, want 1", got)
	}
	if got := alloc.Alloc(); got != 3 {
		t.Errorf("Alloc = %d, want 3", got)
	}
	if alloc.InUse() != 4 {
		t.Errorf("InUse = %d, want 4", alloc.InUse())
	}
}

func TestIdAllocator_InvalidFreePanics(t *testing.T) {
	tests := []struct {
		name string
		free func(a *IdAllocator)
	}{
		{"never allocated", func(a *IdAllocator) { a.Free(5) }},
		{"negative", func(a *IdAllocator) { a.Free(-1) }},
		{"double free", func(a *IdAllocator) {
			id := a.Alloc()
			a.Free(id)
			a.Free(id)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
			}()
			tt.free(NewIdAllocator())
		})
	}
}
