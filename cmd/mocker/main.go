package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mmrzaf/mocker/internal/app"
	"github.com/mmrzaf/mocker/internal/config"
	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/generators"
	"github.com/mmrzaf/mocker/internal/infra/repos/runs"
	"github.com/mmrzaf/mocker/internal/infra/targets"
	"github.com/mmrzaf/mocker/internal/logging"
	"github.com/mmrzaf/mocker/internal/providers"
	"github.com/mmrzaf/mocker/internal/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mocker: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mocker",
		Short:         "Generate mock table data from a table configuration file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(targetCmd())
	rootCmd.AddCommand(providersCmd())
	rootCmd.AddCommand(formatsCmd())
	rootCmd.AddCommand(runsCmd())
	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewLogger(cfg.LogLevel), nil
}

// openHistory returns a nil repository when no history file is configured.
func openHistory(cfg *config.Config) (runs.Repository, error) {
	if cfg.RunsDB == "" {
		return nil, nil
	}
	repo := runs.NewSQLiteRepository(cfg.RunsDB)
	if err := repo.Init(); err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return repo, nil
}

func newRunService(cfg *config.Config, logger *logging.Logger) (*app.RunService, func(), error) {
	history, err := openHistory(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {}
	if history != nil {
		closeFn = func() { history.Close() }
	}
	return app.NewRunService(logger, history), closeFn, nil
}

func seedOf(cfg *config.Config) *int64 {
	if !cfg.HasSeed {
		return nil
	}
	seed := cfg.Seed
	return &seed
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <config>",
		Short: "Write generated rows for every table to files or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if err := cfg.Validate(); err != nil {
				return err
			}

			svc, closeHistory, err := newRunService(cfg, logger)
			if err != nil {
				return err
			}
			defer closeHistory()
			_, err = svc.Generate(&app.RunRequest{
				ConfigPath:   args[0],
				RowCount:     cfg.RowCount,
				WordLists:    cfg.WordLists,
				Seed:         seedOf(cfg),
				LenientTypes: cfg.LenientTypes,
				Format:       cfg.Type,
				Output:       cfg.Output,
				Stdout:       cmd.OutOrStdout(),
			})
			return err
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringP(config.KeyType, "t", config.DefaultType, "output format (see mocker formats)")
	cmd.Flags().StringP(config.KeyOutput, "o", config.DefaultOutput, "output directory, or - for stdout")
	return cmd
}

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <config>",
		Short: "Insert generated rows into a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cfg.RowCount <= 0 {
				return fmt.Errorf("row count must be a positive integer, got %d", cfg.RowCount)
			}
			schema, _ := cmd.Flags().GetString("schema")

			svc, closeHistory, err := newRunService(cfg, logger)
			if err != nil {
				return err
			}
			defer closeHistory()
			run, err := svc.Load(&app.RunRequest{
				ConfigPath:   args[0],
				RowCount:     cfg.RowCount,
				WordLists:    cfg.WordLists,
				Seed:         seedOf(cfg),
				LenientTypes: cfg.LenientTypes,
				Driver:       cfg.Driver,
				DSN:          cfg.DSN,
				Schema:       schema,
				Mode:         cfg.Mode,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tROWS\tSECONDS")
			for _, t := range run.LoadStats.Tables {
				fmt.Fprintf(w, "%s\t%d\t%.2f\n", t.Table, t.Rows, t.DurationSeconds)
			}
			w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: seed=%d\n", run.ID, run.Seed)
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().String(config.KeyDriver, "sqlite", "database driver (mysql|postgres|sqlite)")
	cmd.Flags().String(config.KeyDSN, "", "database connection string")
	cmd.Flags().String("schema", "", "postgres schema (default public)")
	cmd.Flags().String(config.KeyMode, config.DefaultMode, "table mode (create|truncate|append)")
	return cmd
}

func checkCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check <config>",
		Short: "Parse and validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc := app.NewRunService(logger, nil)
			parsed, warnings, err := svc.Check(args[0], cfg.WordLists)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.MarshalIndent(parsed, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(parsed)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(data))
			default:
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TABLE\tCOLUMN\tTYPE\tPROVIDER")
				for _, t := range parsed.Tables {
					for _, c := range t.Columns {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, c.Name, c.Type, c.Provider.Name)
					}
				}
				w.Flush()
			}
			return nil
		},
	}
	cmd.Flags().String(config.KeyWordLists, config.DefaultWordLists, "directory holding first_names.txt and last_names.txt")
	cmd.Flags().StringVar(&format, "format", "table", "output format (table|json|yaml)")
	return cmd
}

func targetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Inspect load targets",
	}

	var probe bool
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Connect to a target and report its capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			schema, _ := cmd.Flags().GetString("schema")

			check, checkErr := app.CheckTarget(cfg.Driver, cfg.DSN, schema, probe)
			data, err := json.MarshalIndent(check, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return checkErr
		},
	}
	checkCmd.Flags().String(config.KeyDriver, "sqlite", "database driver (mysql|postgres|sqlite)")
	checkCmd.Flags().String(config.KeyDSN, "", "database connection string")
	checkCmd.Flags().String("schema", "", "postgres schema (default public)")
	checkCmd.Flags().BoolVar(&probe, "probe", false, "create, write and empty a scratch table")

	driversCmd := &cobra.Command{
		Use:   "drivers",
		Short: "List supported drivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range targets.Drivers {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}

	cmd.AddCommand(checkCmd, driversCmd)
	return cmd
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List value providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.DefaultProviderRegistry(providers.Context{})
			for _, name := range reg.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tEXTENSION")
			for _, name := range registry.DefaultGeneratorRegistry().Names() {
				fmt.Fprintf(w, "%s\t.%s\n", name, generators.Extension(name))
			}
			w.Flush()
			return nil
		},
	}
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect run history (requires --runs-db)",
	}

	var limit int
	var status string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := historyFromFlags(cmd)
			if err != nil {
				return err
			}
			defer repo.Close()

			records, err := repo.List(limit, domain.RunStatus(status))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tSINK\tSTATUS\tROWS\tSEED\tSTARTED")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					r.ID, r.Kind, r.Sink, r.Status, r.TotalRows, r.Seed, r.StartedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show (0 for all)")
	listCmd.Flags().StringVar(&status, "status", "", "filter by status (success|failed)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := historyFromFlags(cmd)
			if err != nil {
				return err
			}
			defer repo.Close()

			rec, err := repo.Get(args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func historyFromFlags(cmd *cobra.Command) (runs.Repository, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if cfg.RunsDB == "" {
		return nil, fmt.Errorf("run history is disabled; set --%s or %s_RUNS_DB", config.KeyRunsDB, config.EnvPrefix)
	}
	return openHistory(cfg)
}
