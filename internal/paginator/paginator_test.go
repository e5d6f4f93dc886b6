package paginator

import (
	"testing"
)

func TestNumPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perPage int
		want    int
	}{
		{"empty collection has one page", 0, 10, 1},
		{"less than a page", 3, 10, 1},
		{"exactly one page", 10, 10, 1},
		{"one over", 11, 10, 2},
		{"31 items by 10", 31, 10, 4},
		{"40 items by 10", 40, 10, 4},
		{"per page clamped to 1", 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.total, tt.perPage).NumPages(); got != tt.want {
				t.Errorf("New(%d, %d).NumPages() = %d, want %d", tt.total, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestPage(t *testing.T) {
	p := New(31, 10)

	tests := []struct {
		name       string
		raw        string
		wantNumber int
		wantLen    int
		wantOffset int
	}{
		{"absent", "", 1, 10, 0},
		{"first", "1", 1, 10, 0},
		{"second", "2", 2, 10, 10},
		{"last", "4", 4, 1, 30},
		{"past the end clamps to last", "5", 4, 1, 30},
		{"far past the end", "999", 4, 1, 30},
		{"beyond int range", "99999999999999999999", 4, 1, 30},
		{"below int range", "-99999999999999999999", 1, 10, 0},
		{"zero clamps to first", "0", 1, 10, 0},
		{"negative clamps to first", "-3", 1, 10, 0},
		{"not a number", "abc", 1, 10, 0},
		{"float", "2.5", 1, 10, 0},
		{"surrounding spaces", " 3 ", 3, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg := p.Page(tt.raw)
			if pg.Number != tt.wantNumber {
				t.Errorf("Page(%q).Number = %d, want %d", tt.raw, pg.Number, tt.wantNumber)
			}
			if pg.Len() != tt.wantLen {
				t.Errorf("Page(%q).Len() = %d, want %d", tt.raw, pg.Len(), tt.wantLen)
			}
			if pg.Offset() != tt.wantOffset {
				t.Errorf("Page(%q).Offset() = %d, want %d", tt.raw, pg.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestPageSizesProperty(t *testing.T) {
	for perPage := 1; perPage <= 12; perPage++ {
		for total := int64(0); total <= 50; total++ {
			p := New(total, perPage)
			numPages := p.NumPages()

			var seen int64
			for n := 1; n <= numPages; n++ {
				seen += int64(p.PageNumber(n).Len())
			}
			if seen != total {
				t.Fatalf("total=%d perPage=%d: pages hold %d items", total, perPage, seen)
			}

			if total > 0 {
				wantLast := int(total % int64(perPage))
				if wantLast == 0 {
					wantLast = perPage
				}
				if got := p.PageNumber(numPages).Len(); got != wantLast {
					t.Fatalf("total=%d perPage=%d: last page has %d items, want %d", total, perPage, got, wantLast)
				}
			}

			if p.PageNumber(numPages+1) != p.PageNumber(numPages) {
				t.Fatalf("total=%d perPage=%d: out of range page did not clamp", total, perPage)
			}
		}
	}
}

func TestPageNavigation(t *testing.T) {
	p := New(25, 10)

	first := p.PageNumber(1)
	if first.HasPrevious() || !first.HasNext() || first.NextNumber() != 2 {
		t.Errorf("unexpected navigation on first page: %+v", first)
	}

	last := p.PageNumber(3)
	if !last.HasPrevious() || last.HasNext() || last.PreviousNumber() != 2 {
		t.Errorf("unexpected navigation on last page: %+v", last)
	}

	if got := last.Range(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Range() = %v, want [1 2 3]", got)
	}

	if New(5, 10).PageNumber(1).HasOtherPages() {
		t.Error("single page should not have other pages")
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 31)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		raw       string
		wantFirst int
		wantLen   int
	}{
		{"", 0, 10},
		{"2", 10, 10},
		{"4", 30, 1},
		{"5", 30, 1},
	}

	for _, tt := range tests {
		page := Slice(items, 10, tt.raw)
		if len(page.Items) != tt.wantLen {
			t.Errorf("Slice(page=%q) has %d items, want %d", tt.raw, len(page.Items), tt.wantLen)
			continue
		}
		if page.Items[0] != tt.wantFirst {
			t.Errorf("Slice(page=%q) starts at %d, want %d", tt.raw, page.Items[0], tt.wantFirst)
		}
	}

	empty := Slice([]string{}, 10, "3")
	if empty.Number != 1 || len(empty.Items) != 0 {
		t.Errorf("Slice of empty slice = %+v, want empty page 1", empty)
	}
}
