package command

import (
	"fmt"
	"time"

	"buildhub/cmd/cli/authentication"
	"buildhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the BuildHub API server. Supports login, registration and logout.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new BuildHub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.RegisterRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Email, _ = cmd.Flags().GetString("email")

		httpClient := client.NewHTTPClient(apiURL)
		response, err := httpClient.Register(&req)
		if err != nil {
			return fmt.Errorf("registration process failed: %w", err)
		}

		fmt.Println("Registration successful! Please login to continue.")
		fmt.Printf("UserID: %s\n", response.UserID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your BuildHub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.LoginRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")

		httpClient := client.NewHTTPClient(apiURL)
		response, err := httpClient.Login(&req)
		if err != nil {
			return fmt.Errorf("login process failed: %w", err)
		}

		err = authentication.StoreTokens(&authentication.StoredCredentials{
			AccessToken:  response.AccessToken,
			RefreshToken: response.RefreshToken,
			Username:     response.Username,
			ExpiresAt:    time.Now().Unix() + response.ExpiresIn,
		})
		if err != nil {
			return fmt.Errorf("failed to store credentials: %w", err)
		}

		fmt.Println("Successfully logged in!")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your BuildHub account",
	Run: func(cmd *cobra.Command, args []string) {
		if err := authentication.ClearTokens(); err != nil {
			fmt.Println("No stored credentials to clear.")
			return
		}
		fmt.Println("Successfully logged out.")
	},
}

func init() {
	registerCmd.Flags().String("username", "", "username for the new account")
	registerCmd.Flags().String("password", "", "password for the new account")
	registerCmd.Flags().String("email", "", "email for the new account")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().String("username", "", "account username")
	loginCmd.Flags().String("password", "", "account password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")

	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
	rootCmd.AddCommand(authCmd)
}
