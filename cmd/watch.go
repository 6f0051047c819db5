package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/liamg/scandiff/config"
	"github.com/liamg/scandiff/scan"
	"github.com/liamg/scandiff/watch"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configPath string

func init() {
	def := config.Default()
	flags := watchCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.String("command", def.Scan.Command, "Scan program which writes a report into the output directory")
	flags.String("shell", def.Scan.Shell, "Shell used to run the scan program. Empty runs it directly")
	flags.StringSlice("arg", nil, "Extra argument for the scan program. Repeatable")
	flags.DurationP("interval", "i", def.Interval, "Delay between scans")
	flags.StringP("output-dir", "o", def.OutputDir, "Directory the scan program writes *.txt reports to")
	flags.Bool("first-match", false, "Only take the first open port after each report line (legacy matching)")
	flags.Bool("resolve-hosts", false, "Annotate hosts with MAC address and vendor from the local ARP cache")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9100")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scan continuously and log differences between consecutive reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {

		cfg, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runWatch(ctx, cfg)
	},
}

func runWatch(ctx context.Context, cfg *config.Config) error {

	describer := newDescriber(cfg.ResolveHosts)

	eventLog, err := watch.CreateEventLog(cfg.OutputDir, time.Now(), describer)
	if err != nil {
		return err
	}
	defer eventLog.Close()

	log.Debugf("Logging changes to %s", eventLog.Path())

	var metrics *watch.Metrics
	if cfg.MetricsAddr != "" {
		metrics = watch.NewMetrics()
		srv, err := metrics.Serve(cfg.MetricsAddr)
		if err != nil {
			return err
		}
		defer srv.Close()
		log.Infof("Serving metrics on %s/metrics", cfg.MetricsAddr)
	}

	scanOutput := log.StandardLogger().WriterLevel(log.DebugLevel)
	defer scanOutput.Close()

	scanner := newScanner(cfg).WithOutput(scanOutput, scanOutput)

	poller := watch.NewPoller(scanner, eventLog, watch.Options{
		Interval:  cfg.Interval,
		OutputDir: cfg.OutputDir,
		Parser:    scan.NewParser(newMatcher(cfg.FirstMatch)),
		Logger:    log.StandardLogger(),
		Metrics:   metrics,
	})

	return poller.Run(ctx)
}

func newScanner(cfg *config.Config) *scan.CommandScanner {
	return scan.NewCommandScanner(cfg.Scan.Shell, cfg.Scan.Command, cfg.Scan.Args...)
}

func newMatcher(firstMatch bool) scan.Matcher {
	if firstMatch {
		return scan.FirstMatchMatcher{}
	}
	return scan.BlockMatcher{}
}

func newDescriber(resolveHosts bool) scan.Describer {
	if resolveHosts {
		return scan.NewLocalDescriber()
	}
	return scan.ServiceDescriber{}
}
