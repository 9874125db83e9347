package libvirt

import (
	"fmt"

	libvirtxml "libvirt.org/libvirt-go-xml"

	"slrz.net/vlsm/plan"
)

// networkXML builds the libvirt network document for the idx'th subnet
// of the plan, s. The network is named after the subnet; the bridge gets
// an index-based name since kernel interface names are limited to 15
// characters. The bridge owns the gateway address and libvirt's dnsmasq
// hands out everything behind it.
func (r *Runner) networkXML(s *plan.Subnet, idx int) (string, error) {
	if s.Bits > 30 {
		// A libvirt network needs a bridge address distinct from
		// the DHCP range; /31 and /32 blocks have no room.
		return "", fmt.Errorf("subnet %s: cannot realize a /%d as a libvirt network",
			s.Name, s.Bits)
	}

	gw := s.FirstUsable()
	n := &libvirtxml.Network{
		Name: r.namePrefix + s.Name,
		Bridge: &libvirtxml.NetworkBridge{
			Name: fmt.Sprintf("vbr-vlsm%d", idx),
			STP:  "on",
		},
		IPs: []libvirtxml.NetworkIP{{
			Address: plan.FormatAddr(gw),
			Netmask: s.Mask(),
			DHCP: &libvirtxml.NetworkDHCP{
				Ranges: []libvirtxml.NetworkDHCPRange{{
					Start: plan.FormatAddr(gw + 1),
					End:   plan.FormatAddr(s.LastUsable()),
				}},
			},
		}},
	}
	if r.forwardMode != "" {
		n.Forward = &libvirtxml.NetworkForward{Mode: r.forwardMode}
	}

	doc, err := n.Marshal()
	if err != nil {
		return "", fmt.Errorf("networkXML %s: %w", s.Name, err)
	}
	return doc, nil
}
