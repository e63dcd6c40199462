package cli

import (
	"fmt"

	"github.com/example/tutorhub/internal/config"
	"github.com/example/tutorhub/internal/database"
	"github.com/example/tutorhub/internal/excel"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	importConfig := excel.DefaultImportConfig()

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tutors and topics from an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			importConfig.FilePath = args[0]
			result, err := excel.Import(cmd.Context(), importConfig,
				database.NewTutorRepository(db), database.NewTopicRepository(db))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "processed: %d\ntutors created: %d\ntopics created: %d\nskipped: %d\n",
				result.Processed, result.TutorsCreated, result.TopicsCreated, result.Skipped)
			for _, e := range result.Errors {
				fmt.Fprintln(out, e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&importConfig.SheetName, "sheet", importConfig.SheetName, "sheet to read from an Excel file")
	cmd.Flags().IntVar(&importConfig.StartRow, "start-row", importConfig.StartRow, "first data row (1-based)")
	return cmd
}
