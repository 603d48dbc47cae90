package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(winningsCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List the derived session report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/reports/sessions")
	},
}

var winningsCmd = &cobra.Command{
	Use:   "winnings",
	Short: "List total winnings per player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/reports/winnings")
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Trigger processing of settled sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/process")
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full ledger as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/export")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
