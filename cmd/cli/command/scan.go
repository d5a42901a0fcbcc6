package command

// scan.go drives the barcode scanning workflow from the terminal.

import (
	"fmt"

	"github.com/spf13/cobra"

	"winecellar/cmd/cli/command/client"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a bottle barcode",
	Long: `Run a scan through the server's capture device and look the detected
barcode up in the catalogue. Use "scan lookup" to skip capture and
resolve a barcode directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetAuthenticatedClient()

		fmt.Println("Scanning...")
		result, err := httpClient.Scan()
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		printScanResult(result)
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [barcode]",
	Short: "Look a barcode up without running the capture device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetAuthenticatedClient()

		result, err := httpClient.LookupBarcode(args[0])
		if err != nil {
			return fmt.Errorf("lookup failed: %w", err)
		}

		printScanResult(result)
		return nil
	},
}

var scanHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your recent scans",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetAuthenticatedClient()

		entries, err := httpClient.ScanHistory()
		if err != nil {
			return fmt.Errorf("failed to fetch scan history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No scans recorded yet.")
			return nil
		}

		fmt.Printf("Recent scans (%d):\n\n", len(entries))
		for _, e := range entries {
			status := "not found"
			if e.Found {
				status = fmt.Sprintf("wine %d", e.WineID)
			}
			fmt.Printf("  %s  %s  (%s)\n", e.ScannedAt.Format("2006-01-02 15:04"), e.Barcode, status)
		}
		return nil
	},
}

func printScanResult(r *client.ScanResponse) {
	switch r.State {
	case "found":
		fmt.Printf("✓ Found: %s (%d) - %s\n", r.Wine.Name, r.Wine.Year, r.Wine.Vineyard)
		if r.Rating != nil {
			fmt.Printf("Your rating: %d/5", r.Rating.Rating)
			if r.Rating.IsFavorite {
				fmt.Print(" ★")
			}
			fmt.Println()
		} else {
			fmt.Println("You have not rated this wine yet.")
		}
	case "not_found":
		fmt.Printf("Barcode %s is not in your catalogue.\n", r.Barcode)
		fmt.Printf("Add it with: winecellar wine add --barcode %s ...\n", r.Barcode)
	default:
		fmt.Printf("Scan state: %s\n", r.State)
	}
}

func init() {
	scanCmd.AddCommand(lookupCmd)
	scanCmd.AddCommand(scanHistoryCmd)

	rootCmd.AddCommand(scanCmd)
}
