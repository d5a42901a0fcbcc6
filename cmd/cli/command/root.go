package command

// root.go defines the root command for the winecellar CLI.
// Global flags and token persistence live here.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	apiURL  string // global flag for API server URL
	cfgFile string // config file path
	token   string // authentication token (jwt)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "winecellar",
	Short: "winecellar - wine collection command line interface",
	Long: `winecellar is a tool for cataloguing a personal wine collection from
the terminal. You can use it to:
- Scan bottle barcodes and look wines up
- Rate wines and mark favorites
- Browse and filter your collection
- View your tasting profile and stats

Use "winecellar [command] -h" to see all available commands.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default $HOME/.winecellar/config.json)")

	cobra.OnInitialize(loadConfig)
}

type cliConfig struct {
	AccessToken string `json:"access_token"`
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".winecellar.json"
	}
	return filepath.Join(home, ".winecellar", "config.json")
}

// loadConfig reads the saved token, if any. A missing or unreadable
// file just means the user is logged out.
func loadConfig() {
	data, err := os.ReadFile(configPath())
	if err != nil {
		return
	}
	var cfg cliConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return
	}
	token = cfg.AccessToken
}

func saveToken(accessToken string) {
	token = accessToken
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not create config dir:", err)
		return
	}
	data, _ := json.MarshalIndent(cliConfig{AccessToken: accessToken}, "", "  ")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not save token:", err)
	}
}
