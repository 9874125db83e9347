package plan

import (
	"strings"
	"testing"
)

const campusDOT = `graph campus {
	graph [network="192.168.10.0/24"]

	"router" [function=router]
	"HR" [hosts=50]
	"Sales" [hosts=25]
	"IT" [hosts=10]

	"router" -- "HR"
	"router" -- "Sales"
	"router" -- "IT"
}
`

func TestParseDOT(t *testing.T) {
	f, err := Parse([]byte(campusDOT))
	if err != nil {
		t.Fatal(err)
	}
	if !f.HasNetwork {
		t.Fatal("graph network attribute not picked up")
	}
	if got := f.Network.String(); got != "192.168.10.0/24" {
		t.Errorf("got network %s, want 192.168.10.0/24", got)
	}
	want := []Request{
		{Name: "HR", Hosts: 50},
		{Name: "Sales", Hosts: 25},
		{Name: "IT", Hosts: 10},
	}
	if len(f.Requests) != len(want) {
		t.Fatalf("got %d requests, want %d", len(f.Requests), len(want))
	}
	for i, w := range want {
		if f.Requests[i] != w {
			t.Errorf("request %d: got %+v, want %+v", i, f.Requests[i], w)
		}
	}
}

func TestParseFile(t *testing.T) {
	f, err := ParseFile("testdata/campus.dot")
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Network.String(); got != "172.16.0.0/22" {
		t.Errorf("got network %s, want 172.16.0.0/22", got)
	}
	if len(f.Requests) != 4 {
		t.Fatalf("got %d requests, want 4", len(f.Requests))
	}

	// The fixture is sized so the whole plan fits.
	p, err := Allocate(f.Network, f.Requests)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := p.Subnets[0].Name, "eng"; got != want {
		t.Errorf("largest request placed first: got %s, want %s", got, want)
	}
}

// Diagrams may carry multiple parallel links between two devices; they
// must not break request extraction.
func TestParseDOTParallelLinks(t *testing.T) {
	const g = `graph g {
		graph [network="10.0.0.0/24"]
		"sw" [function=switch]
		"lan" [hosts=30]
		"sw" -- "lan"
		"sw" -- "lan"
	}`
	f, err := Parse([]byte(g))
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Requests) != 1 || f.Requests[0] != (Request{Name: "lan", Hosts: 30}) {
		t.Errorf("got requests %+v, want lan:30", f.Requests)
	}
}

func TestParseDOTNoNetwork(t *testing.T) {
	f, err := Parse([]byte(`graph g { "lan" [hosts=12] }`))
	if err != nil {
		t.Fatal(err)
	}
	if f.HasNetwork {
		t.Error("got HasNetwork=true for a graph without a network attr")
	}
	if len(f.Requests) != 1 || f.Requests[0].Hosts != 12 {
		t.Errorf("got requests %+v", f.Requests)
	}
}

func TestParseDOTBadHosts(t *testing.T) {
	for _, g := range []string{
		`graph g { "lan" [hosts=zero] }`,
		`graph g { "lan" [hosts=0] }`,
		`graph g { "lan" [hosts="-3"] }`,
	} {
		if _, err := Parse([]byte(g)); err == nil ||
			!strings.Contains(err.Error(), "bad hosts attr") {
			t.Errorf("%s: got err=%v, want bad hosts attr", g, err)
		}
	}
}

func TestParseDOTInvalidName(t *testing.T) {
	_, err := Parse([]byte(`graph g { "bad_name" [hosts=4] }`))
	if err == nil || !strings.Contains(err.Error(), "invalid subnet name") {
		t.Errorf("got err=%v, want invalid subnet name", err)
	}
}

func TestParseDOTBadNetworkAttr(t *testing.T) {
	_, err := Parse([]byte(`graph g { graph [network="10.0.0.0"] "lan" [hosts=4] }`))
	if err == nil || !strings.Contains(err.Error(), "network") {
		t.Errorf("got err=%v, want network attr error", err)
	}
}
