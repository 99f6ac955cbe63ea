package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "dsc",
	Short: "dsc talks to a running dogescand",
	Long: `dsc talks to a running dogescand over its REST API, use it to
trigger scans, list and analyze networks or export them as CSV.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://127.0.0.1:8080", "dogescand base URL")
}
