package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/flavioheleno/statuspaper"
	"github.com/flavioheleno/statuspaper/epd2in7"
	"github.com/flavioheleno/statuspaper/hoststat"
	"github.com/flavioheleno/statuspaper/monitor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"
)

const (
	panelEPD2in7    = "epd2in7"
	panelEPD2in13v4 = "epd2in13v4"
)

var (
	debug         bool
	interval      time.Duration
	diskPath      string
	iface         string
	externalIPURL string
	panel         string
	spiBus        string
	skipUnchanged bool
	partial       bool
	fontPath      string
)

var rootCmd = &cobra.Command{
	Use:   "statuspaper",
	Short: "Show the host status on an e-paper panel",
	Long: `statuspaper polls the hostname, addresses, disk space and boot time of the
machine it runs on and draws them on a Waveshare e-paper HAT, refreshing the
panel every interval until it is interrupted.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: bindFlags,
	RunE:              run,
}

func init() {
	cobra.OnInitialize(initConfig)

	f := rootCmd.Flags()
	f.BoolVar(&debug, "debug", false, "log every row and refresh")
	f.DurationVar(&interval, "interval", monitor.DefaultInterval, "time between refreshes")
	f.StringVar(&diskPath, "disk", hoststat.DefaultDiskPath, "mount point to report free space of")
	f.StringVar(&iface, "interface", hoststat.DefaultInterface, "network interface for the internal address")
	f.StringVar(&externalIPURL, "external-ip-url", hoststat.DefaultExternalIPURL, "plain-text endpoint returning the public address")
	f.StringVar(&panel, "panel", panelEPD2in7, "panel model: epd2in7 or epd2in13v4")
	f.StringVar(&spiBus, "spi", "", "SPI port name (default: first available)")
	f.BoolVar(&skipUnchanged, "skip-unchanged", false, "skip the redraw when nothing but the time changed")
	f.BoolVar(&partial, "partial", false, "use partial refresh on panels that support it")
	f.StringVar(&fontPath, "font", "", "TrueType/OpenType font file (default: Go Mono)")
}

func initConfig() {
	viper.SetEnvPrefix("statuspaper")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// bindFlags copies environment values into the flags that were not given on
// the command line.
func bindFlags(cmd *cobra.Command, _ []string) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !viper.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", viper.Get(f.Name))); err != nil {
			errs = append(errs, fmt.Errorf("flag --%s: %w", f.Name, err))
		}
	})
	if debug {
		level.Set(slog.LevelDebug)
	}
	return errors.Join(errs...)
}

func run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}

	port, err := spireg.Open(spiBus)
	if err != nil {
		return fmt.Errorf("open spi %q: %w", spiBus, err)
	}
	defer port.Close()

	display, err := openDisplay(port)
	if err != nil {
		return err
	}

	face, err := statuspaper.LoadFace(fontPath, statuspaper.DefaultFontSize)
	if err != nil {
		return err
	}
	screen := statuspaper.NewScreen(display, statuspaper.NewRenderer(statuspaper.DefaultStyle(face)))

	if err := screen.Init(); err != nil {
		return fmt.Errorf("init %s: %w", panel, err)
	}
	defer func() {
		if err := screen.Sleep(); err != nil {
			slog.Error("display sleep failed", "panel", panel, "err", err)
		}
	}()

	slog.Info("statuspaper started",
		"panel", panel,
		"bounds", display.Bounds(),
		"interval", interval,
		"interface", iface,
		"disk", diskPath)

	loop := monitor.New(
		hoststat.NewCollector(&hoststat.Opts{
			Interface:     iface,
			DiskPath:      diskPath,
			ExternalIPURL: externalIPURL,
		}),
		screen,
		&monitor.Opts{
			Interval:      interval,
			SkipUnchanged: skipUnchanged,
			Logger:        slog.Default(),
		},
	)
	if err := loop.Run(ctx); err != nil {
		slog.Error("refresh loop stopped", "err", err)
		return err
	}

	slog.Info("signal received, putting display to sleep")
	return nil
}

func openDisplay(port spi.Port) (statuspaper.Display, error) {
	switch panel {
	case panelEPD2in7:
		pins, err := lookupPins("GPIO25", "GPIO17", "GPIO24")
		if err != nil {
			return nil, err
		}
		d, err := epd2in7.NewSPI(port, pins[0], &epd2in7.Opts{
			RST:            pins[1],
			Busy:           pins[2],
			PartialRefresh: partial,
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	case panelEPD2in13v4:
		opts := waveshare2in13v4.EPD2in13v4
		d, err := waveshare2in13v4.NewHat(port, &opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown panel %q (want %s or %s)", panel, panelEPD2in7, panelEPD2in13v4)
	}
}

func lookupPins(names ...string) ([]gpio.PinIO, error) {
	pins := make([]gpio.PinIO, 0, len(names))
	for _, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio %s not found", name)
		}
		pins = append(pins, p)
	}
	return pins, nil
}
