// Package dhcp turns a subnet plan into ISC dhcpd configuration and
// publishes it to a DHCP server over SSH.
package dhcp

import (
	"bytes"
	"fmt"
	"text/template"

	"slrz.net/vlsm/plan"
)

const subnetsTemplateText = `# Generated by vlsm for {{.Network}}. Do not edit.
{{range .Subnets}}
# {{.Name}}: {{.Hosts}} hosts requested, {{.Usable}} usable
subnet {{.Address}} netmask {{.Netmask}} {
	option routers {{.Gateway}};
	option broadcast-address {{.Broadcast}};
	range {{.RangeFrom}} {{.RangeTo}};
}
{{end}}`

var subnetsTemplate = template.Must(template.New("dhcpd").Parse(subnetsTemplateText))

type templateArgs struct {
	Network string
	Subnets []templateSubnet
}

type templateSubnet struct {
	Name      string
	Hosts     int
	Usable    int64
	Address   string
	Netmask   string
	Gateway   string
	Broadcast string
	RangeFrom string
	RangeTo   string
}

// Config renders dhcpd subnet declarations for every subnet in p. The
// first usable address of each subnet is taken by the gateway; the pool
// covers the rest. Point-to-point (/31) and host-route (/32) subnets
// have no room for a DHCP pool and are left out.
func Config(p *plan.Plan) ([]byte, error) {
	args := templateArgs{Network: p.Network.String()}
	for i := range p.Subnets {
		s := &p.Subnets[i]
		if s.Bits > 30 {
			continue
		}
		gw := s.FirstUsable()
		args.Subnets = append(args.Subnets, templateSubnet{
			Name:      s.Name,
			Hosts:     s.Hosts,
			Usable:    s.UsableHosts(),
			Address:   plan.FormatAddr(s.Base),
			Netmask:   s.Mask(),
			Gateway:   plan.FormatAddr(gw),
			Broadcast: plan.FormatAddr(s.Broadcast()),
			RangeFrom: plan.FormatAddr(gw + 1),
			RangeTo:   plan.FormatAddr(s.LastUsable()),
		})
	}

	var buf bytes.Buffer
	if err := subnetsTemplate.Execute(&buf, &args); err != nil {
		return nil, fmt.Errorf("dhcp.Config: %w", err)
	}
	return buf.Bytes(), nil
}
