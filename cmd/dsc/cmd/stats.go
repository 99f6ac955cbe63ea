package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type stats struct {
	Uptime           int64     `json:"uptime"`
	FreeMemory       uint64    `json:"freeMemory"`
	LowestFreeMemory uint64    `json:"lowestFreeMemory"`
	TotalScans       int       `json:"totalScans"`
	FailedScans      int       `json:"failedScans"`
	NetworksFound    int       `json:"networksFound"`
	PacketsSent      int       `json:"packetsSent"`
	CurrentNetworks  int       `json:"currentNetworks"`
	Quality          int       `json:"quality"`
	LastScan         time.Time `json:"lastScan"`
	ScanInProgress   bool      `json:"scanInProgress"`
	AutoScan         bool      `json:"autoScan"`
	ScanInterval     int64     `json:"scanInterval"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show scanner statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var s stats
		if _, err := getAction("stats", &s); err != nil {
			return err
		}
		printStats(s)
		return nil
	},
}

func printStats(s stats) {
	fmt.Printf("Uptime:        %s\n", time.Duration(s.Uptime)*time.Second)
	fmt.Printf("Free memory:   %d KiB (lowest %d KiB)\n", s.FreeMemory/1024, s.LowestFreeMemory/1024)
	fmt.Printf("Scans:         %d (%d failed)\n", s.TotalScans, s.FailedScans)
	fmt.Printf("Networks:      %d current, %d found\n", s.CurrentNetworks, s.NetworksFound)
	fmt.Printf("Quality:       %d%%\n", s.Quality)
	fmt.Printf("Packets sent:  %d (simulated)\n", s.PacketsSent)
	if !s.LastScan.IsZero() {
		fmt.Printf("Last scan:     %s\n", s.LastScan.Local().Format(time.DateTime))
	}
	fmt.Printf("Auto scan:     %t every %s\n", s.AutoScan, time.Duration(s.ScanInterval)*time.Millisecond)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
