package cmd

import (
	"github.com/spf13/cobra"

	"checkgen.dev/pkg/checkgen/internal/domain"
	m "checkgen.dev/pkg/checkgen/internal/model"
)

var verifySourceFlag string
var verifyNamesFromFlag string

// verifyCmd represents the verify command.
var verifyCmd = newVerifyCmd()

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify --source FILE [input]",
		Short: "Check that the assertions in a test file are current",
		Long: `Regenerate the assertions for the given IR dump, merge them into the
source file in memory and compare the result with the file on disk.

A unified diff is printed and the command fails when the file would change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Verify(cmd.Context(), domain.VerifyArgs{
				Options:   engineOptions(),
				Input:     inputPath(args),
				Source:    m.Path(verifySourceFlag),
				NamesFrom: m.Path(verifyNamesFromFlag),
			})
		},
	}

	cmd.Flags().StringVar(&verifySourceFlag, sourceFlagName, "", "annotated test file to check")
	cmd.Flags().StringVar(&verifyNamesFromFlag, namesFromFlagName, "", "name map the source was generated with (see generate --names-from)")
	cobra.CheckErr(cmd.MarkFlagRequired(sourceFlagName))

	return cmd
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
