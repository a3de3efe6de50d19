package queryparams

import "testing"

func TestValidateClamps(t *testing.T) {
	cases := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{"zero values", ListParams{}, ListParams{Page: 1, PerPage: DefaultPerPage}},
		{"negative page", ListParams{Page: -3, PerPage: 20}, ListParams{Page: 1, PerPage: 20}},
		{"oversized limit", ListParams{Page: 2, PerPage: 500}, ListParams{Page: 2, PerPage: MaxPerPage}},
		{"in range", ListParams{Page: 4, PerPage: 25}, ListParams{Page: 4, PerPage: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Validate()
			if tc.in != tc.want {
				t.Errorf("got %+v, want %+v", tc.in, tc.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 10}
	if got := p.Offset(); got != 20 {
		t.Errorf("offset = %d, want 20", got)
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(ListParams{Page: 2, PerPage: 10}, 25)
	if meta.TotalPages != 3 || meta.CurrentPage != 2 || meta.TotalItems != 25 {
		t.Errorf("meta = %+v", meta)
	}

	empty := NewMeta(ListParams{Page: 1, PerPage: 10}, 0)
	if empty.TotalPages != 0 {
		t.Errorf("empty pages = %d, want 0", empty.TotalPages)
	}
}
