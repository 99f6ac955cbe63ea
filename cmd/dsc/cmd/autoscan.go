package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var autoscanCmd = &cobra.Command{
	Use:       "autoscan on|off",
	Short:     "Arm or disarm the periodic scan timer",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		if interval != 0 && interval < time.Second {
			return fmt.Errorf("interval %s is shorter than 1s", interval)
		}

		var res struct {
			Stats stats `json:"stats"`
		}
		resp, err := newClient().R().
			SetBody(map[string]any{
				"enabled":  args[0] == "on",
				"interval": interval.Milliseconds(),
			}).
			SetResult(&res).
			SetError(&apiError{}).
			Put("/api/autoscan")
		if err := check(resp, err); err != nil {
			return err
		}

		fmt.Printf("Auto scan: %t every %s\n", res.Stats.AutoScan, time.Duration(res.Stats.ScanInterval)*time.Millisecond)
		return nil
	},
}

func init() {
	autoscanCmd.Flags().DurationP("interval", "i", 0, "scan interval, defaults to the current one")
	rootCmd.AddCommand(autoscanCmd)
}
