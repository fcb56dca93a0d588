package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// GetVersion reports the VCS revision focusd was built from, per
// api/cmd/helix/version.go's debug.ReadBuildInfo convention.
func GetVersion() string {
	version := "<unknown>"
	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, kv := range info.Settings {
			if kv.Value == "" {
				continue
			}
			if kv.Key == "vcs.revision" {
				version = kv.Value
			}
		}
	}
	return version
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(GetVersion())
		},
	}
}
