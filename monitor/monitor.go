// Package monitor polls the host and keeps the panel up to date.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flavioheleno/statuspaper"
	"github.com/flavioheleno/statuspaper/hoststat"
)

// DefaultInterval is the time between two refreshes.
const DefaultInterval = 30 * time.Second

// Source produces host snapshots. *hoststat.Collector implements it.
type Source interface {
	Collect(ctx context.Context) (hoststat.Snapshot, error)
}

// Presenter shows text rows. *statuspaper.Screen implements it.
type Presenter interface {
	Show(lines []string) error
}

// Rows structures a snapshot for Align. The blank row splits the addresses
// from the timestamps, so the bottom group is anchored to the far edge.
func Rows(s hoststat.Snapshot) []statuspaper.Row {
	return []statuspaper.Row{
		{Label: "Hostname", Value: s.Hostname},
		{Label: "IP Address", Value: s.InternalIP},
		{Label: "External IP", Value: s.ExternalIP},
		{Label: "Disk", Value: s.DiskSpace},
		{},
		{Label: "Booted", Value: s.Booted},
		{Label: "Refreshed", Value: s.Refreshed},
	}
}

// Opts configures a Loop.
type Opts struct {
	Interval      time.Duration // Default: DefaultInterval
	SkipUnchanged bool          // Skip the redraw when Snapshot.Equal holds
	Logger        *slog.Logger  // Default: slog.Default()
}

// Loop collects snapshots and presents them until its context is done.
// A Loop is not safe for concurrent use.
type Loop struct {
	src      Source
	out      Presenter
	interval time.Duration
	skip     bool
	log      *slog.Logger

	last    hoststat.Snapshot
	painted bool
}

// New returns a Loop reading from src and drawing on out. opts can be nil.
func New(src Source, out Presenter, opts *Opts) *Loop {
	var o Opts
	if opts != nil {
		o = *opts
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return &Loop{
		src:      src,
		out:      out,
		interval: o.Interval,
		skip:     o.SkipUnchanged,
		log:      o.Logger,
	}
}

// Tick runs a single iteration. It reports whether a frame was presented.
func (l *Loop) Tick(ctx context.Context) (bool, error) {
	snap, err := l.src.Collect(ctx)
	if err != nil {
		return false, fmt.Errorf("monitor: snapshot: %w", err)
	}

	if l.skip && l.painted && snap.Equal(l.last) {
		l.log.DebugContext(ctx, "snapshot unchanged, skipping redraw", "refreshed", snap.Refreshed)
		return false, nil
	}

	lines := statuspaper.Align(Rows(snap))
	for i, line := range lines {
		l.log.DebugContext(ctx, "row", "index", i, "text", line)
	}

	start := time.Now()
	if err := l.out.Show(lines); err != nil {
		return false, fmt.Errorf("monitor: %w", err)
	}
	l.last = snap
	l.painted = true
	l.log.InfoContext(ctx, "display refreshed",
		"hostname", snap.Hostname,
		"ip", snap.InternalIP,
		"took", time.Since(start))
	return true, nil
}

// Run ticks immediately and then every interval. It returns nil once ctx is
// cancelled and the first error of any other kind.
func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.interval)
	defer t.Stop()

	for {
		if _, err := l.Tick(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
