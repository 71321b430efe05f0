package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roomaudit/roomaudit/internal/calendar"
	"github.com/roomaudit/roomaudit/internal/config"
	"github.com/roomaudit/roomaudit/internal/google"
	"github.com/roomaudit/roomaudit/internal/instrumentation"
	"github.com/roomaudit/roomaudit/internal/logging"
	"github.com/roomaudit/roomaudit/internal/workspace"
)

// commonFlags are shared by the audit subcommands and overlay the
// configuration file when set.
type commonFlags struct {
	configPath   string
	output       string
	verbose      bool
	telemetry    bool
	monthsAhead  int
	monthsBehind int
	orgSuffix    string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "roomaudit.json", "path to the configuration file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "report destination, a file path or - for stdout")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&f.telemetry, "debug-telemetry", false, "dump OpenTelemetry metrics and traces to stdout")
	cmd.Flags().IntVar(&f.monthsAhead, "months-ahead", 0, "override months_ahead from the config file")
	cmd.Flags().IntVar(&f.monthsBehind, "months-behind", 0, "override months_behind from the config file")
	cmd.Flags().StringVar(&f.orgSuffix, "org-suffix", "", "override organization_suffix from the config file")
}

// loadConfig reads the config file and applies flag overrides.
func (f *commonFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("months-ahead") {
		cfg.MonthsAhead = f.monthsAhead
	}
	if cmd.Flags().Changed("months-behind") {
		cfg.MonthsBehind = f.monthsBehind
	}
	if cmd.Flags().Changed("org-suffix") {
		cfg.OrganizationSuffix = f.orgSuffix
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (f *commonFlags) newLogger() *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// environment bundles the wired collaborators an audit command needs.
type environment struct {
	cfg      config.Config
	logger   *slog.Logger
	provider *instrumentation.Provider
	pool     *workspace.SessionPool
	dir      *workspace.DirectoryClient
}

// setup wires credentials, the session pool, the directory client and
// telemetry. Any failure here is fatal and exits non-zero.
func (f *commonFlags) setup(ctx context.Context, cmd *cobra.Command) (*environment, error) {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := f.newLogger()

	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
		ServiceVersion: version,
		Enabled:        f.telemetry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	creds, err := google.LoadCredentials(cfg.CredentialsFile, google.AuditScopes)
	if err != nil {
		return nil, err
	}
	dir, err := workspace.NewDirectoryClient(ctx, creds, cfg.AdminSubject, cfg.CustomerID)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		pool:     workspace.NewSessionPool(creds, 0),
		dir:      dir,
	}, nil
}

func (e *environment) shutdown(ctx context.Context) {
	if err := e.provider.Shutdown(ctx); err != nil {
		e.logger.Warn("failed to flush telemetry", logging.Err(err))
	}
}

// resolveRooms returns the audited resources: the rooms pinned in the
// configuration, or every directory room meeting minCapacity.
func (e *environment) resolveRooms(ctx context.Context, minCapacity int) ([]calendar.ResourceRef, error) {
	all, err := e.dir.ListRooms(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate rooms: %w", err)
	}

	if len(e.cfg.Rooms) == 0 {
		filtered := all[:0]
		for _, room := range all {
			if room.Capacity >= minCapacity {
				filtered = append(filtered, room)
			}
		}
		return filtered, nil
	}

	byAddr := make(map[string]calendar.ResourceRef, len(all))
	for _, room := range all {
		byAddr[room.Address] = room
	}
	rooms := make([]calendar.ResourceRef, 0, len(e.cfg.Rooms))
	for _, addr := range e.cfg.Rooms {
		key := strings.ToLower(strings.TrimSpace(addr))
		if room, ok := byAddr[key]; ok {
			rooms = append(rooms, room)
			continue
		}
		// Pinned rooms the directory does not know are still audited;
		// their capacity is unknown.
		e.logger.Warn("configured room not found in directory", logging.Resource(key))
		rooms = append(rooms, calendar.ResourceRef{Address: key})
	}
	return rooms, nil
}

// buildWindow constructs the audit horizon from the configuration.
func buildWindow(cfg config.Config) (calendar.TimeWindow, error) {
	return calendar.NewTimeWindow(time.Now(), cfg.MonthsBehind, cfg.MonthsAhead)
}

// openOutput returns the report writer for --output and a close func.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	return f, f.Close, nil
}
