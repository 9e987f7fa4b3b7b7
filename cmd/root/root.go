// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/taxcalc/internal/config"
	"fjacquet/taxcalc/internal/container"
	"fjacquet/taxcalc/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags holds the persistent flags shared by every subcommand.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	RulesFile  string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// Flags holds the values of the persistent flags.
	Flags = GlobalFlags{}

	appContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "taxcalc",
		Short: "Calculate income tax, business tax and VAT.",
		Long: `taxcalc computes the tax owed on an amount: progressive income tax over a
bracket table, flat business tax and flat VAT. Amounts may be annual or monthly.

Results are available from the command line, from CSV batches and over HTTP.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to taxcalc!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
	}
)

// Init registers the persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config-file", "", "Configuration file (default: config.yaml in $HOME/.taxcalc, .taxcalc or .)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format (text or json)")
	Cmd.PersistentFlags().StringVar(&Flags.RulesFile, "rules", "", "YAML rule-set file (default: built-in rates)")
}

// initialize loads .env and configuration, applies flag overrides and wires the container.
func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfigFromFile(Flags.ConfigFile)
	if err != nil {
		return err
	}
	if err := ApplyFlags(cfg, Flags); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	SetContainer(c)
	return nil
}

// ApplyFlags copies non-empty flag values over cfg and revalidates it.
func ApplyFlags(cfg *config.Config, flags GlobalFlags) error {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	if flags.RulesFile != "" {
		cfg.Tax.RulesFile = flags.RulesFile
	}
	return cfg.Validate()
}

// SetContainer installs c as the application container and adopts its logger.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetContainer returns the container created by the persistent pre-run.
func GetContainer() (*container.Container, error) {
	if appContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return appContainer, nil
}
