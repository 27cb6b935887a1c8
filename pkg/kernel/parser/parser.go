// Package parser builds the .kernel source dialect into a pkg/kernel/ast.File,
// the entry point every later compiler pass (P1-P8) starts from. Grounded on
// guix's pkg/parser/parser.go: a participle lexer plus a thin Parser wrapper.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
)

// kernelLexer tokenises the dialect. Multi-character operators are listed
// before their single-character prefixes so the lexer's first-match-wins
// ordering picks the longer token (":=" before ":", "==" before "=").
var kernelLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Lifetime", Pattern: `'[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?(_?[a-zA-Z][a-zA-Z0-9]*)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `=>|::|\.\.\.|==|!=|<=|>=|&&|\|\||:=|\+=|-=|\*=|/=|[-+*/%(){}\[\]:;,.@?!<>=&|]`},
})

// Parser wraps a participle.Parser[ast.File] configured for the kernel dialect.
type Parser struct {
	inner *participle.Parser[ast.File]
}

// New builds a Parser, eliding comments and whitespace and allowing enough
// lookahead for the grammar's ordered alternations (Stmt, Primary, ForStmt).
func New() (*Parser, error) {
	inner, err := participle.Build[ast.File](
		participle.Lexer(kernelLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2048),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, err
	}
	return &Parser{inner: inner}, nil
}

// ParseString parses kernel source held in memory; filename is used only for
// diagnostic spans.
func (p *Parser) ParseString(filename, src string) (*ast.File, error) {
	return p.inner.ParseString(filename, src)
}

// ParseBytes parses kernel source read from disk or another byte source.
func (p *Parser) ParseBytes(filename string, src []byte) (*ast.File, error) {
	return p.inner.ParseBytes(filename, src)
}
