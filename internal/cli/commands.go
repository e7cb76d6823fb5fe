package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/trackme/trackme/internal/common/logtrace"
	"github.com/trackme/trackme/pkg/api"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
	serverFlag string
	logLevel   string
	insecure   bool
)

// ErrAlreadyHandled is returned by commands that reported their error themselves.
var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)
var headLabel = color.New(color.Bold)
var dimLabel = color.New(color.Faint)

// httpTransport replaces the network transport of API clients when set.
var httpTransport http.RoundTripper

// now is the clock used for defaults such as today's date.
var now = time.Now

// NewRootCmd builds the trackme command tree and resets the global flags.
func NewRootCmd() *cobra.Command {
	jsonOutput, configFile, serverFlag, logLevel, insecure = false, "", "", "warn", false
	cfg = nil

	rootCmd := &cobra.Command{
		Use:   "trackme [command] [flags]",
		Short: "Trackme CLI - plan your day and track your health from the terminal",
		Long: `Trackme CLI talks to a Trackme server. It manages tasks and events, logs meals,
steps, vitals and activities, and shows the insights derived from them.

Examples:
  # Point the CLI at a server and log in
  trackme config set-server localhost:8000
  trackme login --email demo@trackme.app

  # Show today's dashboard
  trackme home

  # Add a task due this afternoon
  trackme tasks create --title "Review Q4 reports" --tag work --due 2025-03-12T14:00

  # List the meals of a day in JSON
  trackme meals list --date 2025-03-12 -j`,
		PersistentPreRunE: preRunHandlePersistents,
		SilenceErrors:     true,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Server URL, overrides TRACKME_API_URL and the config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate validation")

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newMeCmd(),
		newHomeCmd(),
		newTasksCmd(),
		newEventsCmd(),
		newMealsCmd(),
		newDietCmd(),
		newStepsCmd(),
		newVitalsCmd(),
		newActivitiesCmd(),
		newInsightsCmd(),
		newProfileCmd(),
		newGoalsCmd(),
		newConnectionsCmd(),
		newCreateCmd(),
	)
	return rootCmd
}

// Execute runs the CLI with the process arguments and exits with 1 on error.
// This is called by main.main().
func Execute(ctx context.Context) {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(rootCmd, err)
		os.Exit(1)
	}
}

// reportError prints err on stderr, as JSON with --json.
func reportError(cmd *cobra.Command, err error) {
	if errors.Is(err, ErrAlreadyHandled) {
		return
	}
	if jsonOutput {
		printJSON(cmd.ErrOrStderr(), map[string]string{"error": err.Error()})
		return
	}
	errorLabel.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}

// preRunHandlePersistents sets up logging and loads the configuration
// before any command runs.
func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	logtrace.InitLoggerWithWriter(cmd.ErrOrStderr(), logLevel)
	loadDotEnv()

	if configFile == "" {
		var err error
		configFile, err = GetDefaultConfigPath()
		if err != nil {
			return err
		}
	}

	c, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	cfg = c
	log.Debug().Str("config_file", configFile).Str("server", serverURL()).Msg("configuration loaded")
	return nil
}

// newClient returns an API client for the resolved server using the stored token.
func newClient() *api.Client {
	opts := []api.ClientOption{
		api.WithSession(api.NewSession(GetConfig().Token)),
		api.WithLogger(log.Logger),
	}
	if insecure {
		opts = append(opts, api.WithInsecureSkipVerify())
	}
	if httpTransport != nil {
		opts = append(opts, api.WithHTTPClient(&http.Client{Transport: httpTransport}))
	}
	return api.New(serverURL(), opts...)
}

// requireLogin fails unless a token is stored.
func requireLogin() error {
	if GetConfig().Token == "" {
		return fmt.Errorf("not logged in. Run \"trackme login --email <email>\" first")
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of the trackme CLI",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]string{
					"version":     getCLIVersion(),
					"config_file": configFile,
				})
				return
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "trackme CLI %s\n", getCLIVersion())
			fmt.Fprintf(out, "Config file: %s\n", configFile)
		},
	}
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.1.0"
}
