package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

const (
	label    = "// CHECK-LABEL: "
	same     = "// CHECK-SAME:  "
	ordinary = "// CHECK:       "
)

func splitInput(s string) []string {
	return strings.Split(strings.TrimPrefix(s, "\n"), "\n")
}

func transform(t *testing.T, opts Options, input string) *m.Checks {
	t.Helper()

	checks, err := NewTransformer(opts).Transform(splitInput(input))
	require.NoError(t, err)

	return checks
}

const addInput = `
module {
  func.func @add(%arg0: i32, %arg1: i32) -> i32 {
    %0 = arith.addi %arg0, %arg1 : i32
    return %0 : i32
  }
}`

func TestTransformer_Function(t *testing.T) {
	checks := transform(t, DefaultOptions(), addInput)

	require.Len(t, checks.Groups, 2)
	assert.True(t, checks.Groups[0].Empty())

	pad := strings.Repeat(" ", len("  func.func @add("))
	want := []string{
		label + "  func.func @add(",
		same + pad + "%[[VAL_0:.*]]: i32,",
		same + pad + "%[[VAL_1:.*]]: i32) -> i32 {",
		ordinary + "    %[[VAL_2:.*]] = arith.addi %[[VAL_0]], %[[VAL_1]] : i32",
		ordinary + "    return %[[VAL_2]] : i32",
		ordinary + "  }",
	}

	if diff := cmp.Diff(want, checks.Groups[1].Lines); diff != "" {
		t.Errorf("group lines mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "func.func @add(", checks.Groups[1].Label)
	assert.Equal(t, []m.NameBinding{
		{Kind: m.KindValue, Source: "%arg0", Display: "VAL_0"},
		{Kind: m.KindValue, Source: "%arg1", Display: "VAL_1"},
		{Kind: m.KindValue, Source: "%0", Display: "VAL_2"},
	}, checks.Groups[1].Bindings)
}

func TestTransformer_ScopeBalance(t *testing.T) {
	tr := NewTransformer(DefaultOptions())

	_, err := tr.Transform(splitInput(addInput))
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Depth())
}

func TestTransformer_UnmatchedCloser(t *testing.T) {
	_, err := NewTransformer(DefaultOptions()).Transform([]string{"module {", "}", "}"})
	require.ErrorIs(t, err, ErrScopeUnderflow)

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 3, lineErr.Line)
}

func TestTransformer_NamesRestartPerGroup(t *testing.T) {
	checks := transform(t, DefaultOptions(), `
module {
  func.func @a(%x: i32) {
    return
  }
  func.func @b(%y: i32) {
    return
  }
}`)

	require.Len(t, checks.Groups, 3)
	assert.Equal(t, same+strings.Repeat(" ", len("  func.func @a("))+"%[[VAL_0:.*]]: i32) {", checks.Groups[1].Lines[1])
	assert.Equal(t, same+strings.Repeat(" ", len("  func.func @b("))+"%[[VAL_0:.*]]: i32) {", checks.Groups[2].Lines[1])
}

func TestTransformer_TopLevelStatements(t *testing.T) {
	opts := DefaultOptions()
	opts.StartsFromScope = 0

	checks := transform(t, opts, `
%0 = op_a %x : i32
%1 = op_b %0 : i32`)

	want := []string{
		ordinary + "%[[VAL_0:.*]] = op_a %[[VAL_1:.*]] : i32",
		ordinary + "%[[VAL_2:.*]] = op_b %[[VAL_0]] : i32",
	}

	if diff := cmp.Diff(want, checks.Groups[0].Lines); diff != "" {
		t.Errorf("group lines mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformer_RegionResultsOutliveRegion(t *testing.T) {
	checks := transform(t, DefaultOptions(), `
module {
  func.func @loop(%lb: index) -> f32 {
    %r = scf.for %i = %lb to %lb step %lb iter_args(%acc = %lb) -> (f32) {
      scf.yield %acc : f32
    }
    return %r : f32
  }
}`)

	lines := checks.Groups[1].Lines
	require.Len(t, lines, 7)
	assert.Equal(t, ordinary+"    %[[VAL_1:.*]] = scf.for %[[VAL_2:.*]] = %[[VAL_0]] to %[[VAL_0]] step %[[VAL_0]] iter_args(%[[VAL_3:.*]] = %[[VAL_0]]) -> (f32) {", lines[2])
	assert.Equal(t, ordinary+"      scf.yield %[[VAL_3]] : f32", lines[3])
	assert.Equal(t, ordinary+"    return %[[VAL_1]] : f32", lines[5])
}

func TestTransformer_MultipleResults(t *testing.T) {
	assert.Equal(t, 0, countResults("  scf.if %cond {"))
	assert.Equal(t, 1, countResults("  %r = scf.if %cond -> i32 {"))
	assert.Equal(t, 2, countResults("  %a, %b = scf.for %i = %lb to %ub step %s {"))
}

func TestTransformer_Attributes(t *testing.T) {
	checks := transform(t, DefaultOptions(), `
#map = affine_map<(d0) -> (d0)>
module {
  func.func @f(%arg0: memref<4xf32, #map>) {
    "test.op"() {other = #unknown} : () -> ()
    return
  }
}`)

	assert.Equal(t, []string{"// CHECK: #[[$ATTR_0:.+]] = affine_map<(d0) -> (d0)>"}, checks.Preamble)
	assert.Equal(t, []m.NameBinding{{Kind: m.KindAttribute, Source: "#map", Display: "$ATTR_0"}}, checks.Attributes)

	lines := checks.Groups[1].Lines
	assert.Equal(t, same+strings.Repeat(" ", len("  func.func @f("))+"%[[VAL_0:.*]]: memref<4xf32, #[[$ATTR_0]]>) {", lines[1])
	assert.Equal(t, ordinary+`    "test.op"() {other = #[[?]]} : () -> ()`, lines[2])
}

func TestTransformer_Escaping(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double bracket", "x = [[1, 2]]", `x = {{\[\[}}1, 2]]`},
		{"bracket before value", "load %m[%i]", `load %m{{\[}}%i]`},
		{"plain", "a[0]", "a[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLine(tt.in))
		})
	}
}

func TestTransformer_EscapedLine(t *testing.T) {
	checks := transform(t, DefaultOptions(), `
module {
  func.func @f(%m: memref<4xf32>, %i: index) {
    %0 = memref.load %m[%i] : memref<4xf32>
    "test.op"() {v = [[0]]} : () -> ()
  }
}`)

	lines := checks.Groups[1].Lines
	assert.Equal(t, ordinary+`    %[[VAL_2:.*]] = memref.load %[[VAL_0]]{{\[}}%[[VAL_1]]] : memref<4xf32>`, lines[3])
	assert.Equal(t, ordinary+`    "test.op"() {v = {{\[\[}}0]]} : () -> ()`, lines[4])
}

func TestTransformer_BlockLabelCommentStripped(t *testing.T) {
	checks := transform(t, DefaultOptions(), `
module {
  func.func @f(%c: i1) {
    cf.cond_br %c, ^bb1, ^bb1
  ^bb1:  // 2 preds: ^bb0, ^bb0
    return
  }
}`)

	lines := checks.Groups[1].Lines
	assert.Equal(t, ordinary+"  ^bb1:", lines[3])
}

func TestTransformer_LiteralPercent(t *testing.T) {
	opts := DefaultOptions()
	opts.StartsFromScope = 0

	checks := transform(t, opts, `%0 = "test.fmt"() {f = "100% done"} : () -> i32`)

	assert.Equal(t, ordinary+`%[[VAL_0:.*]] = "test.fmt"() {f = "100% done"} : () -> i32`, checks.Groups[0].Lines[0])
}

func TestTransformer_CustomPrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.CheckPrefix = "FOO"

	checks := transform(t, opts, addInput)

	assert.True(t, strings.HasPrefix(checks.Groups[1].Lines[0], "// FOO-LABEL: "))
	assert.True(t, strings.HasPrefix(checks.Groups[1].Lines[1], "// FOO-SAME:  "))
	assert.True(t, strings.HasPrefix(checks.Groups[1].Lines[3], "// FOO:       "))
}

func TestTransformer_StartsFromScope(t *testing.T) {
	opts := DefaultOptions()
	opts.StartsFromScope = 2

	checks := transform(t, opts, `
module {
  func.func @f() {
    scf.execute_region {
      %0 = arith.constant 0 : i32
    }
  }
}`)

	require.Len(t, checks.Groups, 2)
	assert.True(t, checks.Groups[0].Empty())
	assert.Equal(t, []string{
		label + "    scf.execute_region {",
		ordinary + "      %[[VAL_0:.*]] = arith.constant 0 : i32",
		ordinary + "    }",
	}, checks.Groups[1].Lines)
}

func TestTransformer_VariableOverrides(t *testing.T) {
	opts := DefaultOptions()
	opts.VariableNames = "lhs,,sum"

	checks := transform(t, opts, addInput)
	lines := checks.Groups[1].Lines

	assert.Contains(t, lines[1], "%[[LHS:.*]]")
	assert.Contains(t, lines[2], "%[[VAL_0:.*]]")
	assert.Equal(t, ordinary+"    %[[SUM:.*]] = arith.addi %[[LHS]], %[[VAL_0]] : i32", lines[3])
}

func TestTransformer_BlankLinesIgnored(t *testing.T) {
	checks := transform(t, DefaultOptions(), "module {\n\n  func.func @f() {\n   \n  }\n}")

	assert.Equal(t, []string{label + "  func.func @f() {", ordinary + "  }"}, checks.Groups[1].Lines)
}

func TestTransformer_IndentedDefinitionStartsGroup(t *testing.T) {
	checks := transform(t, DefaultOptions(), `
module {
  %r = scf.execute_region -> i32 {
    scf.yield %c : i32
  }
}`)

	require.Len(t, checks.Groups, 2)
	assert.Equal(t, []string{
		ordinary + "  %[[VAL_0:.*]] = scf.execute_region -> i32 {",
		ordinary + "    scf.yield %[[VAL_1:.*]] : i32",
		ordinary + "  }",
	}, checks.Groups[1].Lines)
	assert.Equal(t, "%[[VAL_0:.*]] = scf.execute_region -> i32 {", checks.Groups[1].Label)
}

func TestTransformer_IndentedDefinitionInLeadingGroup(t *testing.T) {
	opts := DefaultOptions()
	opts.StartsFromScope = 0

	checks := transform(t, opts, "  %t = aie.tile(1, 1)")

	assert.Equal(t, []string{ordinary + "  %[[VAL_0:.*]] = aie.tile(1, 1)"}, checks.Groups[0].Lines)
	assert.NotEmpty(t, checks.Groups[0].Label)
}
