// Package cmd wires configuration, logging and the catalog into the
// bus-ticket-cli commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bus-ticket-cli/config"
	"bus-ticket-cli/service"
	"bus-ticket-cli/tui"
)

const appName = "bus-ticket-cli"

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
}

func (b BuildInfo) String() string {
	out := appName + " " + b.Version
	if b.Commit != "none" && b.Commit != "" {
		out += " (" + b.Commit + ")"
	}
	return out
}

type rootOptions struct {
	configPath string
	from       string
	to         string
	date       string
}

// env is what every command needs once flags are parsed.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	catalog *service.Catalog
	close   func() error
}

// NewRootCmd builds the command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           appName,
		Short:         "Search buses, pick seats and book tickets",
		Long:          `Search bus routes, pick seats on the seat plan and book tickets from the terminal.`,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.SetVersionTemplate(info.String() + "\n")

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config file (default $"+config.EnvConfig+")")
	root.PersistentFlags().String("catalog", "", "YAML bus catalog (default built-in demo data)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	root.Flags().StringVar(&opts.from, "from", "", "preselect the departure city")
	root.Flags().StringVar(&opts.to, "to", "", "preselect the destination city")
	root.Flags().StringVar(&opts.date, "date", "", "preselect the journey date (YYYY-MM-DD)")

	root.AddCommand(
		newSearchCmd(opts),
		newSeatsCmd(opts),
		newBookCmd(opts),
		newHistoryCmd(),
		newVersionCmd(info),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, info BuildInfo) error {
	return NewRootCmd(info).ExecuteContext(ctx)
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	e, err := prepare(cmd, opts, true)
	if err != nil {
		return err
	}
	defer e.close()

	from, to := e.cfg.Search.From, e.cfg.Search.To
	if opts.from != "" {
		from = opts.from
	}
	if opts.to != "" {
		to = opts.to
	}
	var date time.Time
	if opts.date != "" {
		if date, err = parseDate(opts.date); err != nil {
			return err
		}
	}

	e.logger.Info("starting tui", "from", from, "to", to, "history", e.cfg.History.Enabled)
	model := tui.New(tui.Options{
		Catalog:  e.catalog,
		Logger:   e.logger,
		Currency: e.cfg.Currency,
		From:     from,
		To:       to,
		Date:     date,
		History:  e.cfg.History.Enabled,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

// prepare loads the configuration, builds the logger and opens the catalog.
// Interactive commands log nowhere unless a log file is configured.
func prepare(cmd *cobra.Command, opts *rootOptions, interactive bool) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(&cfg, cmd.Flags()); err != nil {
		return nil, err
	}

	fallback := cmd.ErrOrStderr()
	if interactive {
		fallback = io.Discard
	}
	logger, closeLog, err := newLogger(cfg.Logs, fallback)
	if err != nil {
		return nil, err
	}

	catalog, err := openCatalog(cfg.Catalog, logger)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, catalog: catalog, close: closeLog}, nil
}

// applyFlags layers explicitly set persistent flags over the loaded config.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	if flags.Changed("catalog") {
		v, err := flags.GetString("catalog")
		if err != nil {
			return err
		}
		cfg.Catalog = v
	}
	if flags.Changed("log-level") {
		v, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		cfg.Logs.Level = v
	}
	return cfg.Validate()
}

func openCatalog(path string, logger *slog.Logger) (*service.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return service.DefaultCatalog(logger), nil
	}
	return service.LoadCatalog(path, logger)
}

func parseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", value)
	}
	return date, nil
}
