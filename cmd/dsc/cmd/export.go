package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current networks as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		resp, err := getAction("export", nil)
		if err != nil {
			return err
		}

		if out == "" || out == "-" {
			_, err := os.Stdout.Write(resp.Body())
			return err
		}
		if err := os.WriteFile(out, resp.Body(), 0644); err != nil {
			return fmt.Errorf("couldn't write %s: %w", out, err)
		}
		cmd.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "wifi_scan.csv", "file to write, - for stdout")
	rootCmd.AddCommand(exportCmd)
}
