// Package libvirt materializes a subnet plan as libvirt networks, one
// bridged network per allocated subnet, for standing up lab
// environments that mirror the plan.
package libvirt

import (
	"context"
	"fmt"

	"libvirt.org/libvirt-go"

	"slrz.net/vlsm/plan"
)

// Runner implements the runner.Runner interface using libvirt.
type Runner struct {
	conn     *libvirt.Connect
	networks map[string]*libvirt.Network

	// fields below are immutable after initialization
	uri         string // libvirt connection URI
	namePrefix  string
	forwardMode string
	autostart   bool
}

// A RunnerOption may be passed to NewRunner to customize the Runner's
// behaviour.
type RunnerOption func(*Runner)

// WithConnectionURI sets the connection URI used to connect to libvirtd.
// Defaults to "qemu:///system".
func WithConnectionURI(uri string) RunnerOption {
	return func(r *Runner) {
		r.uri = uri
	}
}

// WithNamePrefix configures the prefix to use when naming created
// networks and bridges. The default is "vlsm-".
func WithNamePrefix(prefix string) RunnerOption {
	return func(r *Runner) {
		r.namePrefix = prefix
	}
}

// WithForwardMode sets the forward mode for created networks ("nat",
// "route", ...). The default is an isolated network with no forwarding.
func WithForwardMode(mode string) RunnerOption {
	return func(r *Runner) {
		r.forwardMode = mode
	}
}

// WithAutostart marks created networks to start with libvirtd.
func WithAutostart(r *Runner) {
	r.autostart = true
}

// NewRunner constructs a runner configured with the specified options.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		uri:        "qemu:///system",
		namePrefix: "vlsm-",
		networks:   make(map[string]*libvirt.Network),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run defines and starts one libvirt network per subnet in p. The
// gateway (first usable address) is assigned to the bridge and the
// remaining usable addresses form the DHCP range.
func (r *Runner) Run(ctx context.Context, p *plan.Plan) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("libvirt.(*Runner).Run: %w", err)
		}
	}()

	c, err := libvirt.NewConnect(r.uri)
	if err != nil {
		return err
	}
	r.conn = c
	defer func() {
		if err != nil {
			c.Close()
			r.conn = nil
		}
	}()

	if err := r.defineNetworks(ctx, p); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			r.undefineNetworks()
			for _, n := range r.networks {
				n.Free()
			}
			r.networks = make(map[string]*libvirt.Network)
		}
	}()

	return r.startNetworks(ctx, p)
}

// Destroy tears down any networks created by a previous Run invocation.
// Destroy may be called on a different Runner instance than Run as long
// as the instance was created using the same set of RunnerOptions.
func (r *Runner) Destroy(ctx context.Context, p *plan.Plan) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("libvirt.(*Runner).Destroy: %w", err)
		}
	}()

	if r.conn == nil {
		c, err := libvirt.NewConnect(r.uri)
		if err != nil {
			return err
		}
		r.conn = c
	}

	for i := range p.Subnets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		name := r.namePrefix + p.Subnets[i].Name
		n, err := r.conn.LookupNetworkByName(name)
		if err != nil {
			continue // never created or already gone
		}
		if active, err := n.IsActive(); err == nil && active {
			if err := n.Destroy(); err != nil {
				n.Free()
				return fmt.Errorf("network %s: %w", name, err)
			}
		}
		if err := n.Undefine(); err != nil {
			n.Free()
			return fmt.Errorf("network %s: %w", name, err)
		}
		n.Free()
	}

	return nil
}

func (r *Runner) defineNetworks(ctx context.Context, p *plan.Plan) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("defineNetworks: %w", err)
		}
	}()

	for i := range p.Subnets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s := &p.Subnets[i]
		xml, err := r.networkXML(s, i)
		if err != nil {
			return err
		}
		n, err := r.conn.NetworkDefineXML(xml)
		if err != nil {
			return fmt.Errorf("network %s: %w", s.Name, err)
		}
		r.networks[s.Name] = n
		if r.autostart {
			if err := n.SetAutostart(true); err != nil {
				return fmt.Errorf("network %s: %w", s.Name, err)
			}
		}
	}

	return nil
}

func (r *Runner) startNetworks(ctx context.Context, p *plan.Plan) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("startNetworks: %w", err)
		}
	}()

	for i := range p.Subnets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s := &p.Subnets[i]
		if err := r.networks[s.Name].Create(); err != nil {
			return fmt.Errorf("network %s: %w", s.Name, err)
		}
	}

	return nil
}

func (r *Runner) undefineNetworks() {
	for _, n := range r.networks {
		if active, err := n.IsActive(); err == nil && active {
			n.Destroy()
		}
		n.Undefine()
	}
}
