package resource

import "testing"

func TestPaginate_MiddlePage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	page, info := Paginate(items, 2, 10)

	if len(page) != 10 {
		t.Fatalf("expected 10 items, got %d", len(page))
	}
	if page[0] != 11 || page[9] != 20 {
		t.Errorf("expected items 11..20, got %d..%d", page[0], page[9])
	}
	if info.CurrentPage != 2 {
		t.Errorf("currentPage: expected 2, got %d", info.CurrentPage)
	}
	if info.TotalPages != 3 {
		t.Errorf("totalPages: expected 3, got %d", info.TotalPages)
	}
	if info.TotalItems != 25 {
		t.Errorf("totalItems: expected 25, got %d", info.TotalItems)
	}
	if !info.HasNext || !info.HasPrev {
		t.Errorf("middle page must have both neighbours: next=%v prev=%v", info.HasNext, info.HasPrev)
	}
}

func TestPaginate_LastPartialPage(t *testing.T) {
	items := make([]int, 25)
	page, info := Paginate(items, 3, 10)

	if len(page) != 5 {
		t.Errorf("expected 5 items on last page, got %d", len(page))
	}
	if info.HasNext {
		t.Error("last page must not have next")
	}
	if !info.HasPrev {
		t.Error("last page must have prev")
	}
}

func TestPaginate_OutOfRangeIsEmpty(t *testing.T) {
	items := []int{1, 2, 3}
	page, info := Paginate(items, 9, 10)

	if len(page) != 0 {
		t.Errorf("expected empty page, got %d items", len(page))
	}
	if info.TotalItems != 3 {
		t.Errorf("totalItems: expected 3, got %d", info.TotalItems)
	}
}

func TestPaginate_DefaultsApplied(t *testing.T) {
	items := make([]int, 15)
	page, info := Paginate(items, 0, 0)

	if len(page) != DefaultLimit {
		t.Errorf("expected default limit %d items, got %d", DefaultLimit, len(page))
	}
	if info.CurrentPage != 1 {
		t.Errorf("expected page 1, got %d", info.CurrentPage)
	}
	if info.HasPrev {
		t.Error("first page must not have prev")
	}
}

func TestNewPageInfo_EmptyTotal(t *testing.T) {
	info := NewPageInfo(0, 1, 10)
	if info.TotalPages != 0 {
		t.Errorf("expected 0 pages, got %d", info.TotalPages)
	}
	if info.HasNext || info.HasPrev {
		t.Error("empty result must have no neighbours")
	}
}
