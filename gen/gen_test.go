package gen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastxdr/fastxdr/ast"
	"github.com/fastxdr/fastxdr/parse"
)

func buildAst(t *testing.T, idl string) *ast.Ast {
	t.Helper()
	root, err := parse.Parse(idl)
	require.NoError(t, err)
	a, err := ast.New(ast.Build(root))
	require.NoError(t, err)
	return a
}

type pass func(*bytes.Buffer, *ast.Ast) error

func run(t *testing.T, p pass, a *ast.Ast) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p(&buf, a))
	return buf.String()
}

func runTypes(t *testing.T, a *ast.Ast, prologue string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Types(&buf, a, prologue))
	return buf.String()
}

func runErr(p pass, a *ast.Ast) (string, error) {
	var buf bytes.Buffer
	err := p(&buf, a)
	return buf.String(), err
}

func runTypesErr(a *ast.Ast) (string, error) {
	var buf bytes.Buffer
	err := Types(&buf, a, "")
	return buf.String(), err
}
