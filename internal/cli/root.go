package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the tutorhub command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tutorhub",
		Short:         "Tutor and topic record service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newImportCommand())
	return root
}
