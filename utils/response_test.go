package utils

import "testing"

func TestNewPaginated(t *testing.T) {
	// 20 records, page 2 of 15 -> 5 records on the last page
	p := NewPaginated([]int{1, 2, 3, 4, 5}, 20, 2, 15)
	if p.LastPage != 2 {
		t.Fatalf("LastPage = %d; want 2", p.LastPage)
	}
	if p.Total != 20 || p.CurrentPage != 2 || p.PerPage != 15 {
		t.Fatalf("unexpected page metadata: %+v", p)
	}
}

func TestNewPaginatedEmpty(t *testing.T) {
	p := NewPaginated([]int{}, 0, 1, 15)
	if p.LastPage != 1 {
		t.Fatalf("LastPage for empty set = %d; want 1", p.LastPage)
	}
}

func TestNewPaginatedExactFit(t *testing.T) {
	p := NewPaginated(nil, 30, 1, 15)
	if p.LastPage != 2 {
		t.Fatalf("LastPage = %d; want 2", p.LastPage)
	}
}
