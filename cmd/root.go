package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tcgdex/config"
	"github.com/s0up4200/tcgdex/filter"
	"github.com/s0up4200/tcgdex/formatter"
	"github.com/s0up4200/tcgdex/tcgdex"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *tcgdex.Client
	filters *filter.Manager
	output  formatter.Formatter

	// Global flags
	langFlag   string
	outputFlag string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tcgdex",
	Short: "Browse the TCGdex Pokémon card database from the terminal",
	Long: `tcgdex is a CLI for the TCGdex API. It lists and looks up cards, sets
and series in any language TCGdex supports, filters them server side with
TCGdex query terms and client side with expressions, and prints them as a
tree or as JSON.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "language of the returned data (en, fr, de, it, pt, es)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output format (tree or json)")

	rootCmd.AddCommand(testCmd)
}

// initializeApp loads the configuration and builds the client, the filter
// manager and the output formatter
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line flags win over the config file
	if cmd.Flags().Changed("lang") {
		lang, err := tcgdex.ParseLang(langFlag)
		if err != nil {
			return err
		}
		cfg.API.Lang = lang.String()
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Format = strings.ToLower(outputFlag)
	}

	logger = setupLogger(cfg.Logging)

	client, err = tcgdex.NewClient(logger,
		tcgdex.WithBaseURL(cfg.API.BaseURL),
		tcgdex.WithLang(tcgdex.Lang(cfg.API.Lang)),
		tcgdex.WithTimeout(cfg.API.Timeout),
		tcgdex.WithUserAgent(userAgent()),
		tcgdex.WithConcurrency(cfg.Output.Concurrency),
	)
	if err != nil {
		return fmt.Errorf("failed to create TCGdex client: %w", err)
	}

	output, err = formatter.New(cfg.Output.Format, formatter.Options{ShowDetails: cfg.Output.ShowDetails})
	if err != nil {
		return err
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.PresetExpressions()); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Str("lang", client.Lang().String()).
		Strs("presets", filters.ListFilters()).
		Msg("Initialized")

	return nil
}

// shutdownApp stops the filter workers
func shutdownApp(cmd *cobra.Command, args []string) error {
	if filters == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return filters.Close(ctx)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(writer).With().Timestamp().Logger()
}

// userAgent appends the build version to the configured user agent
func userAgent() string {
	if cfg.API.UserAgent == tcgdex.DefaultUserAgent && version != "dev" {
		return fmt.Sprintf("%s/%s", tcgdex.DefaultUserAgent, strings.TrimPrefix(version, "v"))
	}
	return cfg.API.UserAgent
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TCGdex",
	Long:  `Test the connection to the TCGdex API and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fmt.Printf("Testing connection to TCGdex at %s (%s)...\n", client.BaseURL(), client.Lang())

	start := time.Now()
	if err := client.Ping(ctx); err != nil {
		return err
	}
	fmt.Printf("✓ Connection successful! (%s)\n", time.Since(start).Round(time.Millisecond))

	series, err := client.Series().List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to get series: %w", err)
	}
	sets, err := client.Sets().List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to get sets: %w", err)
	}

	fmt.Printf("\nTCGdex Statistics:\n")
	fmt.Printf("- Total series: %d\n", len(series))
	fmt.Printf("- Total sets: %d\n", len(sets))

	if presets := filters.ListFilters(); len(presets) > 0 {
		fmt.Printf("\nFilter presets:\n")
		for _, name := range presets {
			f, _ := filters.GetFilter(name)
			fmt.Printf("  • %s: %s\n", name, f.Expression())
		}
	}

	return nil
}
