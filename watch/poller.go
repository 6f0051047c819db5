package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/liamg/scandiff/scan"
	"github.com/sirupsen/logrus"
)

type CycleOutcome uint8

const (
	// CycleInsufficient means fewer than two reports were present.
	CycleInsufficient CycleOutcome = iota
	// CycleUnchanged means the two newest reports were already compared.
	CycleUnchanged
	CycleAnalyzed
	// CycleSkipped means the cycle gave up early, e.g. a report vanished
	// before it could be read.
	CycleSkipped
)

func (o CycleOutcome) String() string {
	switch o {
	case CycleInsufficient:
		return "insufficient"
	case CycleUnchanged:
		return "unchanged"
	case CycleAnalyzed:
		return "analyzed"
	case CycleSkipped:
		return "skipped"
	}
	return "unknown"
}

type CycleResult struct {
	Outcome CycleOutcome
	Window  Window
	Changes []scan.Change
}

// AnalysisFunc compares two reports.
type AnalysisFunc func(older, newer ArtifactRef) ([]scan.Change, error)

type Options struct {
	Interval  time.Duration
	OutputDir string
	// Parser used by the default analysis. Defaults to a BlockMatcher parser.
	Parser *scan.Parser
	// Analyze replaces the default parse-and-diff analysis.
	Analyze AnalysisFunc
	Logger  logrus.FieldLogger
	Metrics *Metrics
	// Sleep waits between cycles. Defaults to a timer that stops early when ctx
	// is cancelled.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Poller runs the scan, collect, compare, sleep loop. Cycles run strictly one
// after another.
type Poller struct {
	scanner  scan.Scanner
	eventLog *EventLog
	opts     Options
}

func NewPoller(scanner scan.Scanner, eventLog *EventLog, opts Options) *Poller {
	if opts.Parser == nil {
		opts.Parser = scan.NewParser(nil)
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleep
	}
	p := &Poller{
		scanner:  scanner,
		eventLog: eventLog,
		opts:     opts,
	}
	if p.opts.Analyze == nil {
		p.opts.Analyze = p.analyze
	}
	return p
}

// Run loops until ctx is cancelled or a cycle fails. The remembered window starts
// empty on every run.
func (p *Poller) Run(ctx context.Context) error {
	var window Window

	p.opts.Logger.WithFields(logrus.Fields{
		"output_dir": p.opts.OutputDir,
		"interval":   p.opts.Interval.String(),
	}).Info("Starting continuous scan")

	for {
		if ctx.Err() != nil {
			return nil
		}

		next, _, err := p.Cycle(ctx, window)
		if err != nil {
			return err
		}
		window = next

		p.opts.Logger.Debugf("Sleeping for %s...", p.opts.Interval)
		if err := p.opts.Sleep(ctx, p.opts.Interval); err != nil {
			return nil
		}
	}
}

// Cycle runs one scan and, if the two newest reports differ from window,
// compares them. It returns the window to remember for the next cycle.
func (p *Poller) Cycle(ctx context.Context, window Window) (Window, CycleResult, error) {
	logger := p.opts.Logger

	logger.Info("Running the scan...")
	if err := p.scanner.Scan(ctx); err != nil {
		p.opts.Metrics.observeScanFailure()
		logger.WithError(err).Warn("Scan failed, continuing with existing reports")
	}

	result := CycleResult{Window: window}

	artifacts, err := CollectArtifacts(p.opts.OutputDir, LogPrefix)
	if err != nil {
		logger.WithError(err).Warn("Could not collect reports")
		result.Outcome = CycleSkipped
		return p.finish(window, result)
	}

	latest, ok := latestWindow(artifacts)
	if !ok {
		logger.Debugf("Found %d report(s), waiting for at least 2", len(artifacts))
		result.Outcome = CycleInsufficient
		return p.finish(window, result)
	}

	if latest.Equal(window) {
		logger.Debug("No new report since the last analysis")
		result.Outcome = CycleUnchanged
		return p.finish(window, result)
	}

	logger.WithFields(logrus.Fields{
		"older": latest.Older.Path,
		"newer": latest.Newer.Path,
	}).Info("Running the analysis...")

	changes, err := p.opts.Analyze(latest.Older, latest.Newer)
	if err != nil {
		if errors.Is(err, scan.ErrNotFound) {
			logger.WithError(err).Warn("Report disappeared before it could be read, skipping cycle")
			result.Outcome = CycleSkipped
			return p.finish(window, result)
		}
		return window, result, fmt.Errorf("analysis failed: %w", err)
	}

	if p.eventLog != nil {
		if err := p.eventLog.Record(latest, changes); err != nil {
			return window, result, err
		}
	}
	for _, change := range changes {
		logger.Info(change.String())
	}

	result.Outcome = CycleAnalyzed
	result.Window = latest
	result.Changes = changes
	return p.finish(latest, result)
}

func (p *Poller) finish(window Window, result CycleResult) (Window, CycleResult, error) {
	p.opts.Metrics.observeCycle(result)
	return window, result, nil
}

func (p *Poller) analyze(older, newer ArtifactRef) ([]scan.Change, error) {
	before, err := p.opts.Parser.ParseFile(older.Path)
	if err != nil {
		return nil, err
	}
	after, err := p.opts.Parser.ParseFile(newer.Path)
	if err != nil {
		return nil, err
	}
	return scan.Diff(before, after), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
