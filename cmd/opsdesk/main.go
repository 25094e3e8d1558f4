// Command opsdesk is the operator CLI for the hotel and hospital admin desks.
// It opens the configured snapshot slot, applies one view or action and
// writes the result as a table or JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"opsdesk/internal/config"
	"opsdesk/internal/core"
	"opsdesk/internal/seed"
)

var exitFunc = os.Exit

func main() {
	exitFunc(cli(os.Args[1:], os.Stdout, os.Stderr))
}

// cli runs one command and returns the process exit code.
func cli(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

type app struct {
	stdout, stderr io.Writer
	envFile        string
	asJSON         bool

	cfg      *config.Config
	logger   *slog.Logger
	svc      *core.Service
	registry *prometheus.Registry
	expvar   *core.ExpvarMetricsRecorder
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "opsdesk",
		Short:         "Operate the hotel and hospital admin desks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "write JSON instead of a table")

	root.AddCommand(
		kpisCmd(a),
		roomsCmd(a),
		reservationsCmd(a),
		tasksCmd(a),
		requestsCmd(a),
		appointmentsCmd(a),
		doctorsCmd(a),
		exportCmd(a),
		inventoryCmd(a),
		staffCmd(a),
		restockCmd(a),
		taskCmd(a),
		requestCmd(a),
		reservationCmd(a),
		appointmentCmd(a),
		roomCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, cfg.Log.Level, cfg.Log.Format)

	opts := []core.ServiceOption{
		core.WithLogger(a.logger),
		core.WithLocation(cfg.Location()),
		core.WithLatency(cfg.Latency.Min, cfg.Latency.Max),
		core.WithAuditRecorder(core.NewAuditLog(100, a.logger)),
	}
	switch cfg.Metrics.Exporter {
	case config.MetricsPrometheus:
		a.registry = prometheus.NewRegistry()
		rec, err := core.NewPrometheusMetricsRecorder(a.registry)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		opts = append(opts, core.WithMetricsRecorder(rec))
	case config.MetricsExpvar:
		a.expvar = core.NewExpvarMetricsRecorder("")
		opts = append(opts, core.WithMetricsRecorder(a.expvar))
	}

	slot, err := core.OpenSlot(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	opts = append(opts, core.WithSlot(slot))
	a.svc = core.Open(ctx, seed.For(cfg.App.Desk, time.Now().In(cfg.Location())), opts...)
	a.logger.Debug("desk opened", "app", cfg.App.Desk, "storage", cfg.Storage.Driver, "key", slot.Key())
	return nil
}

// close drains snapshot writes and reports metrics, if an exporter is set.
func (a *app) close() error {
	if a.svc == nil {
		return nil
	}
	err := a.svc.Close()
	a.svc = nil
	switch {
	case a.registry != nil:
		families, gerr := a.registry.Gather()
		if gerr != nil {
			return errors.Join(err, gerr)
		}
		enc := expfmt.NewEncoder(a.stderr, expfmt.NewFormat(expfmt.TypeTextPlain))
		for _, mf := range families {
			if eerr := enc.Encode(mf); eerr != nil {
				return errors.Join(err, eerr)
			}
		}
	case a.expvar != nil:
		out, merr := json.Marshal(a.expvar.Stats())
		if merr != nil {
			return errors.Join(err, merr)
		}
		fmt.Fprintf(a.stderr, "%s %s\n", a.expvar.Name(), out)
	}
	return err
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
