package cli

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

// SupportedAPIVersions is the range of server API versions the CLI works with.
const SupportedAPIVersions = ">= 1.0.0, < 2.0.0"

var apiConstraint *semver.Constraints

func init() {
	var err error
	apiConstraint, err = semver.NewConstraint(SupportedAPIVersions)
	if err != nil {
		panic(err)
	}
}

// IsAPICompatible reports whether the CLI supports the server API version.
// Returns false for invalid version strings.
func IsAPICompatible(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return apiConstraint.Check(v)
}

// StatusResponse is what the status command reports.
type StatusResponse struct {
	Server     string `json:"server"`
	APIVersion string `json:"api_version"`
	Compatible bool   `json:"compatible"`
	Health     string `json:"health"`
	LoggedIn   bool   `json:"logged_in"`
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the server and its API version",
		Long: `Check that the server is reachable and healthy and that its API version is supported
by this CLI.

Examples:
  # Get server status
  trackme status

  # Get server status in JSON format
  trackme status -j`,
		Args: cobra.NoArgs,
		RunE: getStatus,
	}
}

// getStatus handles retrieving server status information
func getStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	client := newClient()
	ctx := cmd.Context()

	info, err := client.Root(ctx)
	if err == nil {
		var health string
		if h, herr := client.Health(ctx); herr == nil {
			health = h.Status
		} else {
			err = herr
		}
		if err == nil {
			status := StatusResponse{
				Server:     client.BaseURL(),
				APIVersion: info.Version,
				Compatible: IsAPICompatible(info.Version),
				Health:     health,
				LoggedIn:   GetConfig().Token != "",
			}
			return printStatus(cmd, status)
		}
	}

	if jsonOutput {
		printJSON(out, map[string]string{
			"version_cli": getCLIVersion(),
			"error":       "Unable to connect to server: " + err.Error(),
		})
	} else {
		fmt.Fprintf(out, "trackme CLI %s\n", getCLIVersion())
		errorLabel.Fprintf(out, "Error: Unable to connect to %s: %v\n", client.BaseURL(), err)
	}
	return ErrAlreadyHandled
}

func printStatus(cmd *cobra.Command, status StatusResponse) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, map[string]any{
			"result":      1,
			"version_cli": getCLIVersion(),
			"value":       status,
		})
	} else {
		fmt.Fprintf(out, "trackme CLI %s\n", getCLIVersion())
		fmt.Fprintf(out, "Server: %s\n", status.Server)
		fmt.Fprintf(out, "Health: %s\n", status.Health)
		if status.Compatible {
			fmt.Fprintf(out, "API Version: %s ", status.APIVersion)
			okLabel.Fprintln(out, "(supported)")
		} else {
			fmt.Fprintf(out, "API Version: %s ", status.APIVersion)
			errorLabel.Fprintf(out, "(unsupported, need %s)\n", SupportedAPIVersions)
		}
		if status.LoggedIn {
			fmt.Fprintf(out, "Logged in as: %s\n", GetConfig().Email)
		} else {
			fmt.Fprintln(out, "Not logged in")
		}
	}
	if !status.Compatible {
		return ErrAlreadyHandled
	}
	return nil
}
