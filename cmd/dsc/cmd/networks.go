package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List networks from the last scan",
	RunE: func(cmd *cobra.Command, args []string) error {
		var res scanResult
		if _, err := getAction("networks", &res); err != nil {
			return err
		}
		printNetworks(os.Stdout, res)
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a scan now and list the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		var res scanResult
		if _, err := getAction("scan", &res); err != nil {
			return err
		}
		printNetworks(os.Stdout, res)
		return nil
	},
}

func printNetworks(out io.Writer, res scanResult) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSSID\tBSSID\tRSSI\tCH\tENCRYPTION\tSECURITY\tSEEN")
	for i, n := range res.Networks {
		ssid := n.SSID
		if n.Hidden && ssid == "" {
			ssid = "<hidden>"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%s\t%d\n",
			i, ssid, n.BSSID, n.RSSI, n.Channel, n.Encryption, n.SecurityLevel, n.Count)
	}
	w.Flush()
	fmt.Fprintf(out, "%d networks at %s\n", res.Count, res.Timestamp.Local().Format("15:04:05"))
}

func init() {
	rootCmd.AddCommand(networksCmd)
	rootCmd.AddCommand(scanCmd)
}
