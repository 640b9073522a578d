// Package hoststat gathers the host status shown on the panel.
package hoststat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// TimeFormat is HH:MM:SS DD/MM/YY.
const TimeFormat = "15:04:05 02/01/06"

// Defaults used by NewCollector when the corresponding Opts field is empty.
const (
	DefaultInterface     = "eth0"
	DefaultDiskPath      = "/"
	DefaultExternalIPURL = "https://ipecho.net/plain"
	DefaultHTTPTimeout   = 10 * time.Second
)

const gib = 1 << 30

// ErrNoAddress is returned when the interface has no IPv4 address.
var ErrNoAddress = errors.New("hoststat: no IPv4 address")

// Snapshot is the host status at one point in time.
type Snapshot struct {
	Hostname   string
	InternalIP string
	ExternalIP string
	DiskSpace  string // "<free>/<total>GB"
	Booted     string // TimeFormat
	Refreshed  string // TimeFormat
}

// Equal reports whether s and o show the same host state. Timestamps are
// ignored.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Hostname == o.Hostname &&
		s.InternalIP == o.InternalIP &&
		s.ExternalIP == o.ExternalIP &&
		s.DiskSpace == o.DiskSpace
}

// Opts configures a Collector.
type Opts struct {
	Interface     string       // Network interface for the internal address (default: eth0)
	DiskPath      string       // Mount point to report (default: /)
	ExternalIPURL string       // Plain-text "what is my IP" endpoint
	Client        *http.Client // Default: 10s timeout
}

// Collector builds Snapshots from the local host.
type Collector struct {
	iface  string
	disk   string
	url    string
	client *http.Client

	// Lookups, replaced in tests.
	hostInfo   func(ctx context.Context) (*host.InfoStat, error)
	interfaces func(ctx context.Context) (psnet.InterfaceStatList, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	now        func() time.Time
}

// NewCollector returns a Collector. opts can be nil to use defaults.
func NewCollector(opts *Opts) *Collector {
	var o Opts
	if opts != nil {
		o = *opts
	}
	if o.Interface == "" {
		o.Interface = DefaultInterface
	}
	if o.DiskPath == "" {
		o.DiskPath = DefaultDiskPath
	}
	if o.ExternalIPURL == "" {
		o.ExternalIPURL = DefaultExternalIPURL
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Collector{
		iface:      o.Interface,
		disk:       o.DiskPath,
		url:        o.ExternalIPURL,
		client:     o.Client,
		hostInfo:   host.InfoWithContext,
		interfaces: psnet.InterfacesWithContext,
		usage:      disk.UsageWithContext,
		now:        time.Now,
	}
}

// Collect takes a fresh Snapshot. Any failed lookup fails the whole snapshot.
func (c *Collector) Collect(ctx context.Context) (Snapshot, error) {
	info, err := c.hostInfo(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("hoststat: host info: %w", err)
	}

	s := Snapshot{
		Hostname:  info.Hostname,
		Booted:    time.Unix(int64(info.BootTime), 0).Format(TimeFormat),
		Refreshed: c.now().Format(TimeFormat),
	}

	if s.DiskSpace, err = c.diskSpace(ctx); err != nil {
		return Snapshot{}, err
	}
	if s.InternalIP, err = c.internalIP(ctx); err != nil {
		return Snapshot{}, err
	}
	if s.ExternalIP, err = c.externalIP(ctx); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func (c *Collector) diskSpace(ctx context.Context) (string, error) {
	u, err := c.usage(ctx, c.disk)
	if err != nil {
		return "", fmt.Errorf("hoststat: disk usage of %s: %w", c.disk, err)
	}
	return FormatDisk(u.Free, u.Total), nil
}

// FormatDisk renders free and total bytes as whole gibibytes, rounded down.
func FormatDisk(free, total uint64) string {
	return fmt.Sprintf("%d/%dGB", free/gib, total/gib)
}

func (c *Collector) internalIP(ctx context.Context) (string, error) {
	ifaces, err := c.interfaces(ctx)
	if err != nil {
		return "", fmt.Errorf("hoststat: interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Name != c.iface {
			continue
		}
		for _, a := range iface.Addrs {
			ip, _, err := net.ParseCIDR(a.Addr)
			if err != nil {
				ip = net.ParseIP(a.Addr)
			}
			if ip4 := ip.To4(); ip4 != nil {
				return ip4.String(), nil
			}
		}
		return "", fmt.Errorf("%w on %s", ErrNoAddress, c.iface)
	}
	return "", fmt.Errorf("hoststat: interface %s not found", c.iface)
}

func (c *Collector) externalIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("hoststat: external ip request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("hoststat: external ip: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("hoststat: external ip: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("hoststat: external ip: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}
