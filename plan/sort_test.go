package plan

import "testing"

func TestSortByName(t *testing.T) {
	subnets := []Subnet{
		{Name: "floor10"},
		{Name: "floor2"},
		{Name: "annex"},
		{Name: "floor1"},
	}
	SortByName(subnets)
	want := []string{"annex", "floor1", "floor2", "floor10"}
	for i, w := range want {
		if subnets[i].Name != w {
			t.Errorf("position %d: got %s, want %s", i, subnets[i].Name, w)
		}
	}
}

func TestNatCompare(t *testing.T) {
	for _, tt := range []struct {
		s, t string
		want int // sign only
	}{
		{"z2", "z10", -1},
		{"z10", "z2", 1},
		{"z2", "z2", 0},
		{"a", "b", -1},
		{"a1", "a1b", -1},
		{"alpha200", "alpha1000", -1},
	} {
		got := natCompare(tt.s, tt.t)
		switch {
		case tt.want < 0 && got >= 0,
			tt.want > 0 && got <= 0,
			tt.want == 0 && got != 0:
			t.Errorf("natCompare(%q, %q) = %d, want sign %d",
				tt.s, tt.t, got, tt.want)
		}
	}
}
