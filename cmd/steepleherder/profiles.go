package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/steepleherder/internal/profile"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in job profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(cmd.OutOrStdout())
		},
	}
}

func runProfiles(w io.Writer) error {
	names, err := profile.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		p, err := profile.LoadBuiltin(name)
		if err != nil {
			return exitError(exitInput, "%v", err)
		}
		fmt.Fprint(w, profile.Format(p))
	}
	return nil
}
