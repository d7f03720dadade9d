package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Elpulgo/azdo-buildstats/internal/version"
)

func newVersionCmd(deps Deps) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, version.String())
			if !check {
				return nil
			}

			info, err := deps.Version.CheckForUpdate(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}
			if info.UpdateAvailable {
				fmt.Fprintf(out, "A newer version is available: %s\n%s\n", info.LatestVersion, info.ReleaseURL)
			} else {
				fmt.Fprintln(out, "You are running the latest version.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	return cmd
}
