package calendar

import (
	"errors"
	"testing"

	"birthday_notification_bot/internal/domain"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateSplitsTwentyItems(t *testing.T) {
	t.Parallel()
	items := seq(20)

	first, err := Paginate(items, 1, 15)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(first) != 15 || first[0] != 0 || first[14] != 14 {
		t.Fatalf("page 1 = %v, want items[0:15]", first)
	}

	second, err := Paginate(items, 2, 15)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(second) != 5 || second[0] != 15 || second[4] != 19 {
		t.Fatalf("page 2 = %v, want items[15:20]", second)
	}

	if _, err := Paginate(items, 3, 15); !errors.Is(err, domain.ErrPageOutOfRange) {
		t.Fatalf("page 3 error = %v, want ErrPageOutOfRange", err)
	}
}

func TestPaginateEmptyAlwaysFails(t *testing.T) {
	t.Parallel()
	for _, page := range []int{-1, 0, 1, 2, 100} {
		if _, err := Paginate([]string{}, page, 15); !errors.Is(err, domain.ErrPageOutOfRange) {
			t.Fatalf("page %d on empty: error = %v, want ErrPageOutOfRange", page, err)
		}
	}
	if _, err := Paginate[string](nil, 1, 15); !errors.Is(err, domain.ErrPageOutOfRange) {
		t.Fatalf("nil slice: error = %v, want ErrPageOutOfRange", err)
	}
}

func TestPaginateEdges(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		total   int
		page    int
		size    int
		wantLen int
		wantErr bool
	}{
		{name: "exact fit", total: 15, page: 1, size: 15, wantLen: 15},
		{name: "start equals len", total: 15, page: 2, size: 15, wantErr: true},
		{name: "page zero", total: 5, page: 0, size: 15, wantErr: true},
		{name: "negative page", total: 5, page: -2, size: 15, wantErr: true},
		{name: "default size", total: 40, page: 3, size: 0, wantLen: 10},
		{name: "single item", total: 1, page: 1, size: 15, wantLen: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Paginate(seq(tt.total), tt.page, tt.size)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrPageOutOfRange) {
					t.Fatalf("error = %v, want ErrPageOutOfRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	t.Parallel()
	cases := map[[2]int]int{
		{0, 15}:  0,
		{1, 15}:  1,
		{15, 15}: 1,
		{16, 15}: 2,
		{20, 15}: 2,
		{31, 0}:  3,
	}
	for in, want := range cases {
		if got := PageCount(in[0], in[1]); got != want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", in[0], in[1], got, want)
		}
	}
}
