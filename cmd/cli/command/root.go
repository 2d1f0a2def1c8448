package command

// Root command for the buildhub CLI. Global flags live here.

import (
	"fmt"
	"os"

	"buildhub/cmd/cli/authentication"

	"github.com/spf13/cobra"
)

var (
	apiURL string // API server URL, shared by all subcommands
	token  string // access token loaded from the keyring
)

var rootCmd = &cobra.Command{
	Use:   "buildhub",
	Short: "buildhub - BuildHub Command Line Interface",
	Long: `buildhub is a tool for interacting with the BuildHub API. It covers
account management and the moderation workflow:
- Register and log in
- Review and resolve abuse reports
- Inspect flagged cars, build lists and parts
- Check your remaining rate-limit quota

Use "buildhub <command> -h" to see the flags of each command.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080/api", "API server URL")

	if creds, err := authentication.GetTokens(); err == nil {
		token = creds.AccessToken
	}
}
