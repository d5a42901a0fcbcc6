package command

// auth.go handles authentication commands for the winecellar CLI.

import (
	"fmt"

	"github.com/spf13/cobra"

	"winecellar/cmd/cli/command/client"
)

// GetAuthenticatedClient builds an HTTP client carrying the saved token.
func GetAuthenticatedClient() *client.HTTPClient {
	httpClient := client.NewHTTPClient(apiURL)
	httpClient.SetToken(token)
	return httpClient
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the winecellar API server. Supports login and logout.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your winecellar account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var c client.LoginRequest
		c.Username, _ = cmd.Flags().GetString("username")
		c.Password, _ = cmd.Flags().GetString("password")

		httpClient := client.NewHTTPClient(apiURL)
		response, err := httpClient.Login(&c)
		if err != nil {
			return fmt.Errorf("login process failed: %w", err)
		}

		saveToken(response.AccessToken)

		fmt.Println("✓ Successfully logged in!")
		fmt.Printf("User: %s (%d ratings, %d favorites)\n",
			response.User.Username, response.User.TotalRatings, response.User.FavoriteCount)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your winecellar account",
	Run: func(cmd *cobra.Command, args []string) {
		saveToken("")
		fmt.Println("✓ Successfully logged out.")
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringP("username", "u", "", "Username for the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(authCmd)
}
