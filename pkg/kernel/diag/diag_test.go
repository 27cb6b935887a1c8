package diag_test

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
)

// every diagnostic type must satisfy the Diagnostic interface and report its
// own concrete Kind() and a non-empty Error() message (spec §7: "a common
// Diagnostic interface with Kind() and Span()").
func TestDiagnostics_SatisfyInterface(t *testing.T) {
	pos := lexer.Position{Filename: "m.kernel", Line: 3, Column: 5}
	cases := []struct {
		name string
		d    diag.Diagnostic
		kind string
	}{
		{"DuplicateTypeName", &diag.DuplicateTypeName{Pos: pos, Name: "Radius"}, "DuplicateTypeName"},
		{"InvalidMarker", &diag.InvalidMarker{Pos: pos, Name: "bogus"}, "InvalidMarker"},
		{"UnsupportedItem", &diag.UnsupportedItem{Pos: pos}, "UnsupportedItem"},
		{"KindMismatch", &diag.KindMismatch{Pos: pos}, "KindMismatch"},
		{"HelperOutsideMain", &diag.HelperOutsideMain{Pos: pos}, "HelperOutsideMain"},
		{"TooManyArrays", &diag.TooManyArrays{Pos: pos, Kind_: "Config", Max: 6}, "TooManyArrays"},
		{"MissingMain", &diag.MissingMain{Pos: pos}, "MissingMain"},
		{"MainFunctionShape", &diag.MainFunctionShape{Pos: pos, Detail: "x"}, "MainFunctionShape"},
		{"UnsupportedConstruct", &diag.UnsupportedConstruct{Pos: pos}, "UnsupportedConstruct"},
		{"UnsupportedNumericSuffix", &diag.UnsupportedNumericSuffix{Pos: pos}, "UnsupportedNumericSuffix"},
		{"UnsupportedTypeName", &diag.UnsupportedTypeName{Pos: pos}, "UnsupportedTypeName"},
		{"MalformedBinding", &diag.MalformedBinding{Pos: pos}, "MalformedBinding"},
		{"BadUseStatement", &diag.BadUseStatement{Pos: pos}, "BadUseStatement"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.d.Kind(); got != c.kind {
				t.Errorf("Kind(): got %q, want %q", got, c.kind)
			}
			if c.d.Span() != pos {
				t.Errorf("Span(): got %+v, want %+v", c.d.Span(), pos)
			}
			if c.d.Error() == "" {
				t.Error("Error() returned an empty string")
			}
			var _ error = c.d
		})
	}
}

func TestTooManyArrays_MessageNamesKindAndMax(t *testing.T) {
	e := &diag.TooManyArrays{Pos: lexer.Position{}, Kind_: "OutputArray", Max: 6}
	got := e.Error()
	if got == "" {
		t.Fatal("Error() returned empty string")
	}
	if !strings.Contains(got, "OutputArray") || !strings.Contains(got, "6") {
		t.Errorf("Error() = %q, want it to name the kind OutputArray and the maximum 6", got)
	}
}
