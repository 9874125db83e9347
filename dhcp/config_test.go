package dhcp

import (
	"strings"
	"testing"

	"slrz.net/vlsm/plan"
)

func TestConfig(t *testing.T) {
	n, err := plan.ParseNetwork("192.168.10.0/24")
	if err != nil {
		t.Fatal(err)
	}
	p, err := plan.Allocate(n, []plan.Request{
		{Name: "HR", Hosts: 50},
		{Name: "Sales", Hosts: 25},
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Config(p)
	if err != nil {
		t.Fatal(err)
	}
	s := string(cfg)
	for _, want := range []string{
		"subnet 192.168.10.0 netmask 255.255.255.192 {",
		"option routers 192.168.10.1;",
		"option broadcast-address 192.168.10.63;",
		"range 192.168.10.2 192.168.10.62;",
		"subnet 192.168.10.64 netmask 255.255.255.224 {",
		"option routers 192.168.10.65;",
		"range 192.168.10.66 192.168.10.94;",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("rendered config lacks %q:\n%s", want, s)
		}
	}
}

// /31 and /32 subnets have no room for a DHCP pool and must not show up
// in the rendered config.
func TestConfigSkipsTinySubnets(t *testing.T) {
	n, err := plan.ParseNetwork("10.0.0.0/29")
	if err != nil {
		t.Fatal(err)
	}
	p, err := plan.Allocate(n, []plan.Request{
		{Name: "lan", Hosts: 2},
		{Name: "uplink", Hosts: 2},
		{Name: "lo", Hosts: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Config(p)
	if err != nil {
		t.Fatal(err)
	}
	s := string(cfg)
	if strings.Contains(s, "subnet") {
		t.Errorf("got subnet declarations for /31+ blocks:\n%s", s)
	}
}
