package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trackme/trackme/pkg/types"
)

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the server",
		Long: `Create an account on the server. Log in afterwards with "trackme login".

Example:
  trackme register --name Sarah --email sarah@example.com --password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := types.UserCreate{}
			in.Name, _ = cmd.Flags().GetString("name")
			in.Email, _ = cmd.Flags().GetString("email")
			in.Password, _ = cmd.Flags().GetString("password")
			if in.Password == "" && in.Email != "" {
				var err error
				if in.Password, err = readPassword(cmd); err != nil {
					return err
				}
			}
			if err := validatePayload(in); err != nil {
				return err
			}
			user, err := newClient().Register(cmd.Context(), in.Name, in.Email, in.Password)
			if err != nil {
				return err
			}
			return printCreated(cmd, "Account created", user)
		},
	}
	cmd.Flags().String("name", "", "Your name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password, read from stdin when omitted")
	return cmd
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Trackme server",
		Long: `Login to the Trackme server to obtain an authentication token.
The token is stored in your configuration file and used by all other commands.

Example:
  trackme login --email demo@trackme.app --password trackme
  trackme login --email demo@trackme.app  # reads the password from stdin`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password, read from stdin when omitted")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		var err error
		if password, err = readPassword(cmd); err != nil {
			return err
		}
	}

	client := newClient()
	client.Logout()
	token, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("login failed: the server returned no token")
	}

	c := GetConfig()
	c.Token = token.AccessToken
	c.Email = email
	if serverFlag != "" {
		c.ServerURL = MorphServer(serverFlag)
	}
	if err := c.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		return printDone(cmd, "", map[string]string{
			"status": "success",
			"email":  email,
		})
	}
	okLabel.Fprintln(cmd.OutOrStdout(), "✓ Login successful")
	return nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearToken(cmd, "Logged out")
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			user, err := newClient().GetCurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			return printValue(cmd, user)
		},
	}
}

// readPassword reads one line from the command's input.
func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return "", fmt.Errorf("no password provided: %w", err)
		}
		return "", fmt.Errorf("no password provided")
	}
	return password, nil
}
