package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"checkgen.dev/pkg/checkgen/internal/domain"
)

var batchSuffixFlag string
var batchParallelFlag int

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch inputs...",
		Short: "Generate standalone assertions for many IR dumps",
		Long: `Convert every input independently and write the assertions next to it,
using the input path plus --suffix as the output path.

Inputs are processed concurrently, limited by --parallel. The first failure
stops scheduling further inputs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Batch(cmd.Context(), domain.BatchArgs{
				Options:  engineOptions(),
				Inputs:   parsePaths(args),
				Suffix:   viper.GetString(batchSuffixKey),
				Parallel: viper.GetInt(batchParallelKey),
			})
		},
	}

	configureBatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func configureBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&batchSuffixFlag, batchSuffixFlagName, viper.GetString(batchSuffixKey), "suffix appended to each input path to form its output path")
	bindFlagToConfig(cmd.Flags().Lookup(batchSuffixFlagName), batchSuffixKey)

	cmd.Flags().IntVarP(&batchParallelFlag, batchParallelFlagName, "p", viper.GetInt(batchParallelKey), "number of inputs converted concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(batchParallelFlagName), batchParallelKey)
}
