package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"checkgen.dev/pkg/checkgen/internal/domain"
	domainmocks "checkgen.dev/pkg/checkgen/internal/domain/mocks"
	m "checkgen.dev/pkg/checkgen/internal/model"
)

func TestGenerateCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
		return args.Input == m.Path("dump.mlir") &&
			args.Output == "" &&
			args.Source == "" &&
			!args.InPlace &&
			!args.Summary &&
			args.Options == domain.DefaultOptions()
	})).Return(nil)

	_, err := executeCommand(t, newGenerateCmd(), "generate", "dump.mlir")
	require.NoError(t, err)
}

func TestGenerateCmd_Stdin(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
		return args.Input.Stdio()
	})).Return(nil)

	_, err := executeCommand(t, newGenerateCmd(), "generate")
	require.NoError(t, err)
}

func TestGenerateCmd_AllFlags(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
		return args.CheckPrefix == "FOO" &&
			args.SourceDelimRegex == "^func" &&
			args.StartsFromScope == 0 &&
			args.VariableNames == "lhs,,sum" &&
			args.AttributeNames == "map0" &&
			args.Output == m.Path("out.mlir") &&
			args.Source == m.Path("test.mlir") &&
			args.NamesOut == m.Path("names.yaml") &&
			args.NamesFrom == m.Path("old.yaml") &&
			args.Summary
	})).Return(nil)

	_, err := executeCommand(t, newGenerateCmd(),
		"generate", "dump.mlir",
		"--check-prefix", "FOO",
		"--source-delim-regex", "^func",
		"--starts-from-scope", "0",
		"--variable-names", "lhs,,sum",
		"--attribute-names", "map0",
		"-o", "out.mlir",
		"--source", "test.mlir",
		"--names-out", "names.yaml",
		"--names-from", "old.yaml",
		"--summary",
	)
	require.NoError(t, err)
}

func TestGenerateCmd_InPlace(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
		return args.InPlace && args.Source == m.Path("test.mlir")
	})).Return(nil)

	_, err := executeCommand(t, newGenerateCmd(), "generate", "dump.mlir", "-i", "--source", "test.mlir")
	require.NoError(t, err)
}

func TestGenerateCmd_PrefixFromEnvironment(t *testing.T) {
	t.Setenv("CHECKGEN_CHECK_PREFIX", "ENV")

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
		return args.CheckPrefix == "ENV"
	})).Return(nil)

	_, err := executeCommand(t, newGenerateCmd(), "generate", "dump.mlir")
	require.NoError(t, err)
}

func TestGenerateCmd_PropagatesError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.Anything).Return(domain.ErrMissingSource)

	output, err := executeCommand(t, newGenerateCmd(), "generate", "dump.mlir", "-i")
	require.ErrorIs(t, err, domain.ErrMissingSource)
	assert.Contains(t, output, domain.ErrMissingSource.Error())
	assert.NotContains(t, output, "Usage:")
}

func TestGenerateCmd_TooManyArgs(t *testing.T) {
	useWorkflow(t, domainmocks.NewMockWorkflow(t))

	_, err := executeCommand(t, newGenerateCmd(), "generate", "a.mlir", "b.mlir")
	require.Error(t, err)
}
