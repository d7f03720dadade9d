package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Elpulgo/azdo-buildstats/internal/ui/patinput"
)

func newAuthCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Set or update the Personal Access Token in the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, deps)
		},
	}
}

func runAuth(cmd *cobra.Command, deps Deps) error {
	out := cmd.OutOrStdout()

	// Check if PAT already exists to show appropriate message
	_, err := deps.Store.GetPAT()
	isUpdate := err == nil

	var model patinput.Model
	if isUpdate {
		fmt.Fprintln(out, "Azure DevOps PAT Update")
		fmt.Fprintln(out, "This will replace your existing Personal Access Token in the system keyring.")
		model = patinput.NewModelForUpdate()
	} else {
		fmt.Fprintln(out, "Azure DevOps PAT Setup")
		fmt.Fprintln(out, "This will store your Personal Access Token in the system keyring.")
		model = patinput.NewModel()
	}
	fmt.Fprintln(out)

	m, err := deps.RunProgram(model)
	if err != nil {
		return fmt.Errorf("failed to run PAT input: %w", err)
	}

	final, ok := m.(patinput.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", m)
	}
	if final.Cancelled() {
		fmt.Fprintln(out, "Cancelled, PAT left unchanged.")
		return nil
	}

	pat := final.GetPAT()
	if pat == "" {
		return fmt.Errorf("PAT input cancelled or empty")
	}
	if err := deps.Store.SetPAT(pat); err != nil {
		return fmt.Errorf("failed to save PAT to keyring: %w", err)
	}

	fmt.Fprintln(out, "\nPAT saved successfully to system keyring.")
	return nil
}
