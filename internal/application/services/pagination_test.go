package services

import (
	"reflect"
	"testing"
)

func TestNewPagination_Window(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		wantPages   []int
		wantHasNext bool
		wantHasPrev bool
	}{
		{"middle of a long run", 5, 10, []int{3, 4, 5, 6, 7}, true, true},
		{"start boundary", 1, 10, []int{1, 2, 3}, true, false},
		{"second page", 2, 10, []int{1, 2, 3, 4}, true, true},
		{"end boundary", 10, 10, []int{8, 9, 10}, false, true},
		{"window bounded by total", 2, 3, []int{1, 2, 3}, true, true},
		{"single page", 1, 1, []int{1}, false, false},
		{"no pages at all", 1, 0, []int{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.currentPage, tt.totalPages, "/tasks")

			if !reflect.DeepEqual(p.Pages, tt.wantPages) {
				t.Errorf("Pages = %v, want %v", p.Pages, tt.wantPages)
			}
			if len(p.Pages) > 5 {
				t.Errorf("window length %d exceeds 5", len(p.Pages))
			}
			if p.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.wantHasNext)
			}
			if p.HasPrev != tt.wantHasPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.wantHasPrev)
			}
		})
	}
}

func TestNewPagination_Neighbors(t *testing.T) {
	p := NewPagination(4, 9, "/tasks")

	if p.NextPage != 5 || p.PrevPage != 3 {
		t.Errorf("NextPage/PrevPage = %d/%d, want 5/3", p.NextPage, p.PrevPage)
	}
	if p.NextURL != "/tasks?page=5" {
		t.Errorf("NextURL = %q", p.NextURL)
	}
	if p.PrevURL != "/tasks?page=3" {
		t.Errorf("PrevURL = %q", p.PrevURL)
	}
}

func TestNewPagination_ClampsCurrentPage(t *testing.T) {
	p := NewPagination(0, 5, "/tasks")

	if p.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", p.CurrentPage)
	}
	if !reflect.DeepEqual(p.Pages, []int{1, 2, 3}) {
		t.Errorf("Pages = %v, want [1 2 3]", p.Pages)
	}
}
