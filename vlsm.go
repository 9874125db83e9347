// Command vlsm computes a Variable Length Subnet Mask layout for a set
// of subnet requests, read either from a DOT network diagram given as a
// positional argument or from the -requests flag. The resulting plan is
// printed as a table or JSON and can optionally be pushed to a DHCP
// server or realized as libvirt networks.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"slrz.net/vlsm/dhcp"
	"slrz.net/vlsm/plan"
	"slrz.net/vlsm/runner/libvirt"
)

var (
	network = flag.String("network", os.Getenv("VLSM_NETWORK"),
		"carve subnets out of `CIDR` (overrides the graph attribute)")
	requests = flag.String("requests", "",
		"allocate for comma-separated `name:hosts` pairs instead of a DOT file")
	jsonOut = flag.Bool("json", false,
		"print the plan as JSON instead of a table")
	byName = flag.Bool("byname", false,
		"order output by subnet name instead of allocation order")
	writeDHCP = flag.String("writedhcp", "",
		"write ISC dhcpd subnet declarations to `file` (- for stdout)")
	publish = flag.String("publish", os.Getenv("VLSM_PUBLISH"),
		"upload dhcpd configuration to `user@host` over SSH")
	identity = flag.String("identity",
		os.Getenv("VLSM_IDENTITY"),
		"authenticate with the private key in `file`")
	knownHosts = flag.String("knownhosts", os.Getenv("VLSM_KNOWN_HOSTS"),
		"verify the server against the known_hosts `file` (default: no verification)")
	remotePath = flag.String("remotepath",
		getEnvOrDefault("VLSM_REMOTE_PATH", "/etc/dhcp/dhcpd.conf"),
		"write the published configuration to `path` on the server")
	deploy = flag.Bool("deploy", os.Getenv("VLSM_DEPLOY") != "",
		"define and start a libvirt network per subnet")
	destroy = flag.Bool("destroy", false,
		"tear down libvirt networks created by a previous -deploy")
	libvirtURI = flag.String("c", os.Getenv("LIBVIRT_DEFAULT_URI"),
		"connect to specified `URI`")
	namePrefix = flag.String("nameprefix",
		getEnvOrDefault("VLSM_NAME_PREFIX", "vlsm-"),
		"prefix names of created resources with `string`")
	forwardMode = flag.String("forward", os.Getenv("VLSM_FORWARD_MODE"),
		"forward mode for created libvirt networks (empty: isolated)")
	autostart = flag.Bool("autostart", false,
		"mark created libvirt networks to start with libvirtd")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")
	if flag.Parse(); flag.NArg() > 1 {
		log.Fatalf("usage: vlsm [options…] [topology.dot]")
	}

	reqs, netw, err := gatherInput()
	if err != nil {
		log.Fatal(err)
	}

	p, err := plan.Allocate(netw, reqs)
	if err != nil {
		log.Fatal(err)
	}
	if *byName {
		plan.SortByName(p.Subnets)
	}

	if *jsonOut {
		err = writeJSON(os.Stdout, p)
	} else {
		err = writeTable(os.Stdout, p)
	}
	if err != nil {
		log.Fatal(err)
	}

	if *writeDHCP != "" || *publish != "" {
		cfg, err := dhcp.Config(p)
		if err != nil {
			log.Fatal(err)
		}
		if s := *writeDHCP; s != "" {
			if err := writeFileOrStdout(s, cfg); err != nil {
				log.Fatal(err)
			}
		}
		if s := *publish; s != "" {
			if err := publishConfig(s, cfg); err != nil {
				log.Fatal(err)
			}
		}
	}

	if *deploy || *destroy {
		if err := runLibvirt(p); err != nil {
			log.Fatal(err)
		}
	}
}

// gatherInput assembles the request list and the major network from the
// DOT file argument and flags. An explicit -network wins over the
// graph's network attribute.
func gatherInput() ([]plan.Request, plan.Network, error) {
	var reqs []plan.Request
	var netw plan.Network
	haveNetwork := false

	switch {
	case flag.NArg() == 1:
		f, err := plan.ParseFile(flag.Arg(0))
		if err != nil {
			return nil, plan.Network{}, err
		}
		reqs = f.Requests
		netw, haveNetwork = f.Network, f.HasNetwork
	case *requests != "":
		var err error
		if reqs, err = parseRequestsFlag(*requests); err != nil {
			return nil, plan.Network{}, err
		}
	default:
		return nil, plan.Network{}, fmt.Errorf("no input: pass a DOT file or -requests")
	}
	if len(reqs) == 0 {
		return nil, plan.Network{}, fmt.Errorf("no subnet requests in input")
	}

	if s := *network; s != "" {
		n, err := plan.ParseNetwork(s)
		if err != nil {
			return nil, plan.Network{}, err
		}
		netw, haveNetwork = n, true
	}
	if !haveNetwork {
		return nil, plan.Network{}, fmt.Errorf("no major network: pass -network or set the graph attribute")
	}

	return reqs, netw, nil
}

// parseRequestsFlag parses "HR:50,Sales:25,IT:10".
func parseRequestsFlag(s string) ([]plan.Request, error) {
	var reqs []plan.Request
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		i := strings.LastIndexByte(field, ':')
		if i <= 0 {
			return nil, fmt.Errorf("bad request %q, want name:hosts", field)
		}
		if !plan.ValidName(field[:i]) {
			return nil, fmt.Errorf("invalid subnet name in %q", field)
		}
		hosts, err := strconv.Atoi(field[i+1:])
		if err != nil || hosts <= 0 {
			return nil, fmt.Errorf("bad host count in %q", field)
		}
		reqs = append(reqs, plan.Request{
			Name:  field[:i],
			Hosts: hosts,
		})
	}
	return reqs, nil
}

func writeTable(w io.Writer, p *plan.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tCIDR\tNETMASK\tUSABLE RANGE\tBROADCAST\tHOSTS\t\n")
	for i := range p.Subnets {
		s := &p.Subnets[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s - %s\t%s\t%d/%d\t\n",
			s.Name, s.CIDR(), s.Mask(),
			plan.FormatAddr(s.FirstUsable()),
			plan.FormatAddr(s.LastUsable()),
			plan.FormatAddr(s.Broadcast()),
			s.Hosts, s.UsableHosts())
	}
	return tw.Flush()
}

type subnetRecord struct {
	Name           string `json:"name"`
	CIDR           string `json:"cidr"`
	Netmask        string `json:"netmask"`
	Network        string `json:"network"`
	Broadcast      string `json:"broadcast"`
	FirstUsable    string `json:"first_usable"`
	LastUsable     string `json:"last_usable"`
	RequestedHosts int    `json:"requested_hosts"`
	UsableHosts    int64  `json:"usable_hosts"`
}

func writeJSON(w io.Writer, p *plan.Plan) error {
	doc := struct {
		Network string         `json:"network"`
		Subnets []subnetRecord `json:"subnets"`
	}{
		Network: p.Network.String(),
	}
	for i := range p.Subnets {
		s := &p.Subnets[i]
		doc.Subnets = append(doc.Subnets, subnetRecord{
			Name:           s.Name,
			CIDR:           s.CIDR(),
			Netmask:        s.Mask(),
			Network:        plan.FormatAddr(s.Base),
			Broadcast:      plan.FormatAddr(s.Broadcast()),
			FirstUsable:    plan.FormatAddr(s.FirstUsable()),
			LastUsable:     plan.FormatAddr(s.LastUsable()),
			RequestedHosts: s.Hosts,
			UsableHosts:    s.UsableHosts(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(&doc)
}

func writeFileOrStdout(path string, p []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(p)
		return err
	}
	return ioutil.WriteFile(path, p, 0644)
}

func publishConfig(target string, cfg []byte) error {
	i := strings.IndexByte(target, '@')
	if i <= 0 {
		return fmt.Errorf("bad -publish target %q, want user@host", target)
	}
	user, host := target[:i], target[i+1:]
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "22")
	}

	if *identity == "" {
		return fmt.Errorf("-publish needs -identity")
	}
	key, err := ioutil.ReadFile(*identity)
	if err != nil {
		return err
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return fmt.Errorf("parse %s: %w", *identity, err)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if s := *knownHosts; s != "" {
		if hostKeyCallback, err = knownhosts.New(s); err != nil {
			return err
		}
	}

	pub := dhcp.NewPublisher(host, &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
	}, dhcp.WithRemotePath(*remotePath))

	return pub.Publish(cfg)
}

func runLibvirt(p *plan.Plan) error {
	opts := []libvirt.RunnerOption{
		libvirt.WithNamePrefix(*namePrefix),
	}
	if s := *libvirtURI; s != "" {
		opts = append(opts, libvirt.WithConnectionURI(s))
	}
	if s := *forwardMode; s != "" {
		opts = append(opts, libvirt.WithForwardMode(s))
	}
	if *autostart {
		opts = append(opts, libvirt.WithAutostart)
	}
	r := libvirt.NewRunner(opts...)

	ctx := context.TODO()
	if *destroy {
		return r.Destroy(ctx, p)
	}
	return r.Run(ctx, p)
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
