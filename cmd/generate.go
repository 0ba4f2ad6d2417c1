package cmd

import (
	"github.com/spf13/cobra"

	"checkgen.dev/pkg/checkgen/internal/domain"
	m "checkgen.dev/pkg/checkgen/internal/model"
)

const (
	outputFlagName    = "output"
	sourceFlagName    = "source"
	inPlaceFlagName   = "inplace"
	namesOutFlagName  = "names-out"
	namesFromFlagName = "names-from"
	summaryFlagName   = "summary"
)

var (
	generateOutputFlag    string
	generateSourceFlag    string
	generateInPlaceFlag   bool
	generateNamesOutFlag  string
	generateNamesFromFlag string
	generateSummaryFlag   bool
)

const generateLongDescription = `Read an IR dump (from the given file or stdin) and print FileCheck
assertions for it.

With --source the assertions are merged into an existing test file: the
file is split at every line matching --source-delim-regex and each
generated group is placed in front of its segment. Assertions from a
previous run are replaced. Use --inplace to rewrite the source file.

--names-out records the placeholder names of a run. After editing the
display names in that file, pass it to --names-from to regenerate with them.

` + namingHelp

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [input]",
		Short: "Generate assertions for an IR dump",
		Long:  generateLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Generate(cmd.Context(), domain.GenerateArgs{
				Options:   engineOptions(),
				Input:     inputPath(args),
				Output:    m.Path(generateOutputFlag),
				Source:    m.Path(generateSourceFlag),
				InPlace:   generateInPlaceFlag,
				NamesOut:  m.Path(generateNamesOutFlag),
				NamesFrom: m.Path(generateNamesFromFlag),
				Summary:   generateSummaryFlag,
			})
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateOutputFlag, outputFlagName, "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&generateSourceFlag, sourceFlagName, "", "annotated test file to merge the assertions into")
	cmd.Flags().BoolVarP(&generateInPlaceFlag, inPlaceFlagName, "i", false, "rewrite the source file in place")
	cmd.Flags().StringVar(&generateNamesOutFlag, namesOutFlagName, "", "write the assigned placeholder names as YAML to this file")
	cmd.Flags().StringVar(&generateNamesFromFlag, namesFromFlagName, "", "reuse the placeholder names of an earlier --names-out file")
	cmd.Flags().BoolVar(&generateSummaryFlag, summaryFlagName, false, "print a per-group summary to stderr")
}
