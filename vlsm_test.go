package main

import "testing"

func TestParseRequestsFlag(t *testing.T) {
	reqs, err := parseRequestsFlag("HR:50, Sales:25,IT:10,")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		name  string
		hosts int
	}{
		{"HR", 50},
		{"Sales", 25},
		{"IT", 10},
	}
	if len(reqs) != len(want) {
		t.Fatalf("got %d requests, want %d", len(reqs), len(want))
	}
	for i, w := range want {
		if reqs[i].Name != w.name || reqs[i].Hosts != w.hosts {
			t.Errorf("request %d: got %s:%d, want %s:%d",
				i, reqs[i].Name, reqs[i].Hosts, w.name, w.hosts)
		}
	}
}

// Names are validated the same way as in DOT input: a name that a DOT
// diagram would reject must not sneak in through the flag.
func TestParseRequestsFlagRejects(t *testing.T) {
	for _, in := range []string{
		"bad_name:5",
		"-hyphen-first:5",
		":5",
		"x:",
		"x:0",
		"x:-3",
		"HR",
	} {
		if _, err := parseRequestsFlag(in); err == nil {
			t.Errorf("parseRequestsFlag(%q): got nil error", in)
		}
	}
}
