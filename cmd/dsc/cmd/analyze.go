package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type analysis struct {
	Result struct {
		Index         int      `json:"index"`
		Network       network  `json:"network"`
		SecurityLevel string   `json:"securityLevel"`
		Quality       int      `json:"quality"`
		Band          string   `json:"band"`
		Findings      []string `json:"findings"`
	} `json:"result"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <index>",
	Short: "Analyze one network from the last scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil || index < 0 {
			return fmt.Errorf("index must be a non-negative number, got %q", args[0])
		}

		var a analysis
		resp, err := newClient().R().
			SetPathParam("index", args[0]).
			SetResult(&a).
			SetError(&apiError{}).
			Get("/api/networks/{index}")
		if err := check(resp, err); err != nil {
			return err
		}

		r := a.Result
		fmt.Printf("Network %d: %s (%s)\n", r.Index, r.Network.SSID, r.Network.BSSID)
		fmt.Printf("  Security: %s, %s\n", r.SecurityLevel, r.Network.Encryption)
		fmt.Printf("  Signal:   %d dBm, %d%% on channel %d (%s)\n", r.Network.RSSI, r.Quality, r.Network.Channel, r.Band)
		for _, f := range r.Findings {
			fmt.Printf("  - %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
