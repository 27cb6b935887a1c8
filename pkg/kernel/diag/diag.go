// Package diag defines the compiler's diagnostic taxonomy: every fatal error
// a pass can raise is a concrete type carrying a source span, rather than an
// opaque fmt.Errorf string, so tooling (and tests) can switch on Kind().
package diag

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Diagnostic is implemented by every error type in this package.
type Diagnostic interface {
	error
	Kind() string
	Span() lexer.Position
}

func formatf(pos lexer.Position, format string, args ...interface{}) string {
	return fmt.Sprintf("%s: %s", pos.String(), fmt.Sprintf(format, args...))
}

// DuplicateTypeName: two type declarations share a name (spec §4.1).
type DuplicateTypeName struct {
	Pos   lexer.Position
	Name  string
	First lexer.Position
}

func (e *DuplicateTypeName) Kind() string          { return "DuplicateTypeName" }
func (e *DuplicateTypeName) Span() lexer.Position  { return e.Pos }
func (e *DuplicateTypeName) Error() string {
	return formatf(e.Pos, "type %q already declared at %s", e.Name, e.First.String())
}

// InvalidMarker: a decorator other than @config/@input_array/@output_vec/
// @output_array was found on a type declaration, or a type declaration
// carries more than one marker (spec §4.1).
type InvalidMarker struct {
	Pos  lexer.Position
	Name string
}

func (e *InvalidMarker) Kind() string         { return "InvalidMarker" }
func (e *InvalidMarker) Span() lexer.Position { return e.Pos }
func (e *InvalidMarker) Error() string {
	return formatf(e.Pos, "invalid type marker @%s (unrecognised, or a second marker on one type)", e.Name)
}

// UnsupportedItem: a top-level item the collector cannot accept: a type or
// function declaration carrying generic type parameters, or an item that is
// none of const/type/func.
type UnsupportedItem struct {
	Pos lexer.Position
}

func (e *UnsupportedItem) Kind() string         { return "UnsupportedItem" }
func (e *UnsupportedItem) Span() lexer.Position { return e.Pos }
func (e *UnsupportedItem) Error() string {
	return formatf(e.Pos, "unsupported top-level item")
}

// KindMismatch: a helper-method intrinsic was called on a type whose marker
// kind does not support that method (spec §4.2, matrix grounded on
// WgslHelperMethodMatcher::choose_expand_format).
type KindMismatch struct {
	Pos        lexer.Position
	TypeName   string
	ActualKind string
	Method     string
}

func (e *KindMismatch) Kind() string         { return "KindMismatch" }
func (e *KindMismatch) Span() lexer.Position { return e.Pos }
func (e *KindMismatch) Error() string {
	return formatf(e.Pos, "%s.%s is not valid for type %q (kind %s)", e.TypeName, e.Method, e.TypeName, e.ActualKind)
}

// HelperOutsideMain: one of the seven IO intrinsics (VecInput/ConfigInput/
// Output method calls) was called from a function other than the single
// distinguished main entry point (spec §4.2).
type HelperOutsideMain struct {
	Pos      lexer.Position
	Function string
}

func (e *HelperOutsideMain) Kind() string         { return "HelperOutsideMain" }
func (e *HelperOutsideMain) Span() lexer.Position { return e.Pos }
func (e *HelperOutsideMain) Error() string {
	return formatf(e.Pos, "IO intrinsics are only valid inside main, found in %q", e.Function)
}

// TooManyArrays: more than MaxArraysPerKind config, input array or output
// array types were declared (spec §4.4 binding budget).
type TooManyArrays struct {
	Pos   lexer.Position
	Kind_ string
	Max   int
}

func (e *TooManyArrays) Kind() string         { return "TooManyArrays" }
func (e *TooManyArrays) Span() lexer.Position { return e.Pos }
func (e *TooManyArrays) Error() string {
	return formatf(e.Pos, "more than %d %s types declared", e.Max, e.Kind_)
}

// MissingMain: no function named "main" was found (spec §4.5).
type MissingMain struct {
	Pos lexer.Position
}

func (e *MissingMain) Kind() string         { return "MissingMain" }
func (e *MissingMain) Span() lexer.Position { return e.Pos }
func (e *MissingMain) Error() string {
	return formatf(e.Pos, "module has no main function")
}

// MainFunctionShape: main has the wrong shape: it must take exactly one
// parameter named iter_pos, return nothing, and never assign to iter_pos.
type MainFunctionShape struct {
	Pos    lexer.Position
	Detail string
}

func (e *MainFunctionShape) Kind() string         { return "MainFunctionShape" }
func (e *MainFunctionShape) Span() lexer.Position { return e.Pos }
func (e *MainFunctionShape) Error() string {
	return formatf(e.Pos, "main function shape invalid: %s", e.Detail)
}

// UnsupportedConstruct: a grammatically valid but semantically unsupported
// construct was found (match, loop, closures, tuples, try, range-for, make).
type UnsupportedConstruct struct {
	Pos     lexer.Position
	Feature string
}

func (e *UnsupportedConstruct) Kind() string         { return "UnsupportedConstruct" }
func (e *UnsupportedConstruct) Span() lexer.Position { return e.Pos }
func (e *UnsupportedConstruct) Error() string {
	return formatf(e.Pos, "%s is not supported in kernel functions", e.Feature)
}

// UnsupportedNumericSuffix: a numeric literal carries a suffix this compiler
// does not recognise (spec §4.3 suffix table: f32, f16, u32, i32).
type UnsupportedNumericSuffix struct {
	Pos    lexer.Position
	Suffix string
}

func (e *UnsupportedNumericSuffix) Kind() string         { return "UnsupportedNumericSuffix" }
func (e *UnsupportedNumericSuffix) Span() lexer.Position { return e.Pos }
func (e *UnsupportedNumericSuffix) Error() string {
	return formatf(e.Pos, "unsupported numeric literal suffix %q", e.Suffix)
}

// UnsupportedTypeName: a scalar type name is not one of the builtin scalar/
// vector/matrix names and does not resolve to a declared custom type.
type UnsupportedTypeName struct {
	Pos  lexer.Position
	Name string
}

func (e *UnsupportedTypeName) Kind() string         { return "UnsupportedTypeName" }
func (e *UnsupportedTypeName) Span() lexer.Position { return e.Pos }
func (e *UnsupportedTypeName) Error() string {
	return formatf(e.Pos, "unknown type %q", e.Name)
}

// MalformedBinding: a binding-affecting attribute (array length constant
// naming, builtin field decorator) does not match the required shape.
type MalformedBinding struct {
	Pos    lexer.Position
	Detail string
}

func (e *MalformedBinding) Kind() string         { return "MalformedBinding" }
func (e *MalformedBinding) Span() lexer.Position { return e.Pos }
func (e *MalformedBinding) Error() string {
	return formatf(e.Pos, "malformed binding: %s", e.Detail)
}

// BadUseStatement: a `use "...";` import path is empty or otherwise invalid.
type BadUseStatement struct {
	Pos  lexer.Position
	Path string
}

func (e *BadUseStatement) Kind() string         { return "BadUseStatement" }
func (e *BadUseStatement) Span() lexer.Position { return e.Pos }
func (e *BadUseStatement) Error() string {
	return formatf(e.Pos, "invalid use statement %q", e.Path)
}
