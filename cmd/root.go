// Package cmd provides the root command and CLI setup for checkgen.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"checkgen.dev/pkg/checkgen/internal/adapter"
	"checkgen.dev/pkg/checkgen/internal/controller"
	"checkgen.dev/pkg/checkgen/internal/domain"
	m "checkgen.dev/pkg/checkgen/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var nameStore adapter.NameMapStore
var workflow domain.Workflow
var ui controller.UI

// Root-level flags shared by every conversion command.
var (
	checkPrefixFlag     string
	sourceDelimFlag     string
	startsFromScopeFlag int
	variableNamesFlag   string
	attributeNamesFlag  string
	logFileFlag         string
	verboseFlag         bool
)

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stderr))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	nameStore = adapter.NewNameMapStore(fsAdapter)
	workflow = domain.NewWorkflow(fsAdapter, nameStore, ui)
}

const rootLongDescription = `checkgen turns the textual IR printed by an MLIR-style compiler pass into
FileCheck assertions. Value names are replaced by stable, scope-aware
placeholders so the assertions survive renumbering.

The generated checks are meant as a starting point: minimize them and rename
the placeholders to reflect what the test is about.`

const namingHelp = `Placeholder names can be chosen up front with comma separated lists that
are consumed in order of first appearance. Empty entries fall back to the
generated VAL_<n> and ATTR_<n> names:
  --variable-names lhs,,sum
  --attribute-names map0,map1`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "checkgen",
		Short:        "Generate FileCheck assertions from IR dumps",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&checkPrefixFlag, checkPrefixFlagName, viper.GetString(checkPrefixKey), "FileCheck prefix of the generated assertions")
	bindFlagToConfig(flags.Lookup(checkPrefixFlagName), checkPrefixKey)

	flags.StringVar(&sourceDelimFlag, sourceDelimFlagName, viper.GetString(sourceDelimKey), "regex that starts a new segment in the source file")
	bindFlagToConfig(flags.Lookup(sourceDelimFlagName), sourceDelimKey)

	flags.IntVar(&startsFromScopeFlag, startsFromScopeFlagName, viper.GetInt(startsFromScopeKey), "number of outermost scope levels to omit")
	bindFlagToConfig(flags.Lookup(startsFromScopeFlagName), startsFromScopeKey)

	flags.StringVar(&variableNamesFlag, variableNamesFlagName, viper.GetString(variableNamesKey), "comma separated names for values, in order of appearance")
	bindFlagToConfig(flags.Lookup(variableNamesFlagName), variableNamesKey)

	flags.StringVar(&attributeNamesFlag, attributeNamesFlagName, viper.GetString(attributeNamesKey), "comma separated names for attribute aliases, in order of definition")
	bindFlagToConfig(flags.Lookup(attributeNamesFlagName), attributeNamesKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "path of the rotating log file")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log naming decisions at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// inputPath returns the optional single input argument; stdin when absent.
func inputPath(args []string) m.Path {
	if len(args) == 0 {
		return ""
	}

	return m.Path(args[0])
}
