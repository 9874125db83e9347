package dhcp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/sftp"
	"go4.org/writerutil"
	"golang.org/x/crypto/ssh"
)

// A Publisher uploads rendered dhcpd configuration to a DHCP server,
// syntax-checks it there and reloads the service.
type Publisher struct {
	addr   string // host:port
	config *ssh.ClientConfig

	remotePath string
	reloadCmd  []string
}

// A PublisherOption may be passed to NewPublisher to customize the
// Publisher's behaviour.
type PublisherOption func(*Publisher)

// WithRemotePath sets where on the server the configuration is written.
// Defaults to /etc/dhcp/dhcpd.conf.
func WithRemotePath(path string) PublisherOption {
	return func(pub *Publisher) {
		pub.remotePath = path
	}
}

// WithReloadCommand replaces the command run after a successful upload
// and syntax check. Passing no arguments disables the reload entirely.
func WithReloadCommand(args ...string) PublisherOption {
	return func(pub *Publisher) {
		pub.reloadCmd = args
	}
}

// NewPublisher constructs a Publisher targeting the SSH server at addr
// (host:port), authenticating as described by config.
func NewPublisher(addr string, config *ssh.ClientConfig, opts ...PublisherOption) *Publisher {
	pub := &Publisher{
		addr:       addr,
		config:     config,
		remotePath: "/etc/dhcp/dhcpd.conf",
		reloadCmd:  []string{"sudo", "systemctl", "reload", "dhcpd"},
	}
	for _, opt := range opts {
		opt(pub)
	}
	return pub
}

// Publish uploads cfg, runs dhcpd's syntax check against the uploaded
// file, then reloads the service. A failed syntax check leaves the file
// in place on the server but skips the reload.
func (pub *Publisher) Publish(cfg []byte) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("dhcp.(*Publisher).Publish %s: %w", pub.addr, err)
		}
	}()

	conn, err := ssh.Dial("tcp", pub.addr, pub.config)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := sftpPut(conn, pub.remotePath, cfg); err != nil {
		return err
	}
	if _, err := runCommand(conn, "sudo", "dhcpd", "-t", "-cf", pub.remotePath); err != nil {
		return fmt.Errorf("syntax check: %w", err)
	}
	if len(pub.reloadCmd) == 0 {
		return nil
	}
	if _, err := runCommand(conn, pub.reloadCmd[0], pub.reloadCmd[1:]...); err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	return nil
}

func runCommand(c *ssh.Client, name string, args ...string) ([]byte, error) {
	var b strings.Builder

	b.WriteString(shellQuote(name))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(shellQuote(a))
	}
	cmd := b.String()

	sess, err := c.NewSession()
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	var stdout bytes.Buffer
	stderr := &writerutil.PrefixSuffixSaver{N: 1024}
	sess.Stdout = &stdout
	sess.Stderr = stderr

	if err := sess.Run(cmd); err != nil {
		if msg := stderr.Bytes(); len(msg) > 0 {
			return nil, fmt.Errorf("runCommand: %w | %s |", err, msg)
		}
		return nil, fmt.Errorf("runCommand: %w", err)
	}

	return stdout.Bytes(), nil
}

func sftpPut(conn *ssh.Client, dstPath string, content []byte) (err error) {
	c, err := sftp.NewClient(conn)
	if err != nil {
		return err
	}
	defer c.Close()

	fd, err := c.Create(dstPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = fd.Write(content)
	return err
}

// ShellQuote returns s in a form suitable to pass it to the shell as an
// argument. Obviously, it works for Bourne-like shells only. The whole
// string is enclosed in single quotes; any single quote within s is
// replaced by the sequence quote-backslash-quote-quote, relying on the
// shell concatenating adjacent strings.
func shellQuote(s string) string {
	t := strings.Replace(s, "'", `'\''`, -1)
	return "'" + t + "'"
}
