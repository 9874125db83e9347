package plan

import "testing"

func TestSubnetPointToPoint(t *testing.T) {
	// /31: no broadcast reservation, both addresses usable.
	base, err := ParseAddr("10.0.0.4")
	if err != nil {
		t.Fatal(err)
	}
	s := &Subnet{Name: "uplink", Hosts: 2, Base: base, Bits: 31}
	if got := s.UsableHosts(); got != 2 {
		t.Errorf("got %d usable hosts, want 2", got)
	}
	if got, want := FormatAddr(s.FirstUsable()), "10.0.0.4"; got != want {
		t.Errorf("got first usable %s, want %s", got, want)
	}
	if got, want := FormatAddr(s.LastUsable()), "10.0.0.5"; got != want {
		t.Errorf("got last usable %s, want %s", got, want)
	}
	if got, want := s.Mask(), "255.255.255.254"; got != want {
		t.Errorf("got mask %s, want %s", got, want)
	}
}

func TestSubnetHostRoute(t *testing.T) {
	base, err := ParseAddr("10.0.0.7")
	if err != nil {
		t.Fatal(err)
	}
	s := &Subnet{Name: "lo", Hosts: 1, Base: base, Bits: 32}
	if got := s.UsableHosts(); got != 1 {
		t.Errorf("got %d usable hosts, want 1", got)
	}
	if s.FirstUsable() != base || s.LastUsable() != base || s.Broadcast() != base {
		t.Errorf("want first=last=broadcast=%s, got %s/%s/%s",
			FormatAddr(base), FormatAddr(s.FirstUsable()),
			FormatAddr(s.LastUsable()), FormatAddr(s.Broadcast()))
	}
	if got, want := s.CIDR(), "10.0.0.7/32"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
