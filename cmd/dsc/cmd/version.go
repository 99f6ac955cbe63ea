package cmd

import (
	"fmt"

	"github.com/Masterminds/semver"
	"github.com/dogeorg/dogescan/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get dsc and dogescand version information",
	Run: func(cmd *cobra.Command, args []string) {
		local := version.GetRelease()
		fmt.Printf("Release: %s\n", local.Release)
		fmt.Printf("Git: %s\n", local.Git.Commit)
		fmt.Printf("Dirty: %t\n", local.Git.Dirty)

		var remote version.VersionInfo
		resp, err := newClient().R().SetResult(&remote).SetError(&apiError{}).Get("/api/version")
		if err := check(resp, err); err != nil {
			fmt.Printf("Server: unreachable (%s)\n", err)
			return
		}
		fmt.Printf("Server: %s\n", remote.Release)

		if msg := compatibility(local.Release, remote.Release); msg != "" {
			fmt.Println(msg)
		}
	},
}

// compatibility warns when client and server are on different major
// releases. Unparseable versions (ie: dev builds) are not compared.
func compatibility(client, server string) string {
	c, err := semver.NewVersion(client)
	if err != nil {
		return ""
	}
	s, err := semver.NewVersion(server)
	if err != nil {
		return ""
	}
	if c.Major() != s.Major() {
		return fmt.Sprintf("Warning: dsc %s may not work with dogescand %s", c, s)
	}
	if c.LessThan(s) {
		return fmt.Sprintf("Note: dogescand is newer (%s), consider updating dsc", s)
	}
	return ""
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
