package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/errfrom/errfrom/internal/diag"
	"github.com/errfrom/errfrom/internal/errfrom/errfromtest"
	"github.com/errfrom/errfrom/internal/errfrom/parse"
)

func parseDecls(t *testing.T, src string) ([]*parse.Decl, []*diag.Diagnostic) {
	t.Helper()
	p, err := parse.New(errfromtest.LoadSource(t, src))
	require.NoError(t, err)

	decls, err := p.ParseDecls()
	diags, others := diag.Collect(err)
	require.Empty(t, others)
	return decls, diags
}

const unionSrc = `package p

type InnerError struct{}

func (InnerError) Error() string { return "inner" }

//errfrom:union
type AppError interface {
	error
	appError()
}

//errfrom:context "use case error"
type Wrapped struct {
	Msg string
	Err InnerError ` + "`errfrom:\"source\"`" + `
}

func (Wrapped) Error() string { return "" }
func (Wrapped) appError()     {}

type Plain struct{ Msg string }

func (*Plain) Error() string { return "" }
func (*Plain) appError()     {}

type Other struct{}
`

func TestParseDecls(t *testing.T) {
	decls, diags := parseDecls(t, unionSrc)
	require.Empty(t, diags)
	require.Len(t, decls, 1)

	decl := decls[0]
	assert.Equal(t, "AppError", decl.Name)
	assert.Equal(t, 2, decl.Union.NumMethods())
	require.Len(t, decl.Variants, 2)

	wrapped := decl.Variants[0]
	assert.Equal(t, "AppError.Wrapped", wrapped.String())
	assert.Same(t, decl, wrapped.Decl())
	assert.False(t, wrapped.Pointer)
	require.Len(t, wrapped.Annotations, 1)
	assert.Equal(t, "context", wrapped.Annotations[0].Name)
	assert.Equal(t, `"use case error"`, wrapped.Annotations[0].Args)

	require.Len(t, wrapped.Fields, 2)
	assert.Equal(t, "Msg", wrapped.Fields[0].Name)
	assert.False(t, wrapped.Fields[0].SourceMarked)
	assert.Equal(t, "Err", wrapped.Fields[1].Name)
	assert.True(t, wrapped.Fields[1].SourceMarked)
	assert.Equal(t, 1, wrapped.Fields[1].Index)

	plain := decls[0].Variants[1]
	assert.Equal(t, "Plain", plain.Name)
	assert.True(t, plain.Pointer)
	assert.Equal(t, "*example.com/p.Plain", plain.Type().String())
	assert.Empty(t, plain.Annotations)
}

func TestParseDeclsSourceComment(t *testing.T) {
	decls, diags := parseDecls(t, `package p

//errfrom:union
type E interface{ e() }

//errfrom:context ""
type V struct {
	// Cause is the wrapped value.
	//errfrom:source
	Cause error
	A, B  string //errfrom:source
	error
}

func (V) e() {}
`)
	require.Empty(t, diags)
	require.Len(t, decls, 1)
	require.Len(t, decls[0].Variants, 1)

	fields := decls[0].Variants[0].Fields
	require.Len(t, fields, 4)
	assert.True(t, fields[0].SourceMarked)
	assert.True(t, fields[1].SourceMarked)
	assert.True(t, fields[2].SourceMarked)
	assert.False(t, fields[3].SourceMarked)
	assert.Equal(t, "error", fields[3].Name)
}

func TestParseDeclsDefinedStruct(t *testing.T) {
	decls, diags := parseDecls(t, `package p

//errfrom:union
type E interface{ e() }

type base struct {
	Msg string
	Err error `+"`errfrom:\"source\"`"+`
}

//errfrom:context "ctx"
type V base

func (V) e() {}
`)
	require.Empty(t, diags)
	require.Len(t, decls[0].Variants, 1)

	fields := decls[0].Variants[0].Fields
	require.Len(t, fields, 2)
	assert.True(t, fields[1].SourceMarked)
	assert.True(t, fields[1].Annotations[0].FromTag)
}

func TestParseDeclsGroupedTypes(t *testing.T) {
	decls, diags := parseDecls(t, `package p

type (
	//errfrom:union
	E interface{ e() }

	//errfrom:type string
	V struct{ Msg string }
)

func (V) e() {}
`)
	require.Empty(t, diags)
	require.Len(t, decls, 1)
	require.Len(t, decls[0].Variants, 1)
	assert.Equal(t, "type", decls[0].Variants[0].Annotations[0].Name)
}

func TestParseDeclsMultipleUnions(t *testing.T) {
	decls, diags := parseDecls(t, `package p

//errfrom:union
type B interface{ b() }

//errfrom:union
type A interface{ a() }

type V struct{}

func (V) a() {}
func (V) b() {}
`)
	require.Empty(t, diags)
	require.Len(t, decls, 2)
	assert.Equal(t, "B", decls[0].Name)
	assert.Equal(t, "A", decls[1].Name)
	assert.Equal(t, "B.V", decls[0].Variants[0].String())
	assert.Equal(t, "A.V", decls[1].Variants[0].String())
}

func TestParseDeclsNotAUnion(t *testing.T) {
	for _, tc := range []struct {
		name string
		decl string
		want string
	}{
		{"struct", "type X struct{}", "cannot use X as union: it is a struct type, not an interface"},
		{"basic", "type X int", "cannot use X as union: it is int, not an interface"},
		{"empty", "type X interface{}", "cannot use X as union: it has no methods"},
		{"generic", "type X[T any] interface{ x(T) }", "cannot use X as union: it is generic"},
		{"constraint", "type X interface{ ~int; x() }", "cannot use X as union: it is a constraint interface"},
		{"alias", "type X = error", "cannot use X as union: it is an alias"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			decls, diags := parseDecls(t, "package p\n\n//errfrom:union\n"+tc.decl+"\n")
			assert.Empty(t, decls)
			require.Len(t, diags, 1)
			assert.Equal(t, diag.NotAUnion, diags[0].Kind)
			assert.Equal(t, "X", diags[0].Decl)
			assert.Equal(t, tc.want, diags[0].Message())
			assert.Equal(t, 4, diags[0].Position().Line)
		})
	}
}

func TestParseDeclsStray(t *testing.T) {
	_, diags := parseDecls(t, `package p

//errfrom:union
type E interface{ e() }

//errfrom:context "ctx"
type Lonely struct{ Err error }
`)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.MalformedAnnotation, diags[0].Kind)
	assert.Empty(t, diags[0].Decl)
	assert.Equal(t, "errfrom:context on Lonely, which implements no union in this package", diags[0].Message())
}

func TestParseDeclsStrayAfterRejectedUnion(t *testing.T) {
	_, diags := parseDecls(t, `package p

//errfrom:union
type E struct{}

//errfrom:context "ctx"
type Lonely struct{ Err error }
`)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.NotAUnion, diags[0].Kind)
}

func TestParseDeclsUnknownOnPlainType(t *testing.T) {
	_, diags := parseDecls(t, `package p

//errfrom:contxt "ctx"
type Lonely struct{ Err error }
`)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.MalformedAnnotation, diags[0].Kind)
	assert.Equal(t, "unknown directive errfrom:contxt; did you mean errfrom:context?", diags[0].Message())
}

func TestParseDeclsSourceOnType(t *testing.T) {
	_, diags := parseDecls(t, `package p

//errfrom:source
type Lonely struct{ Err error }
`)
	require.Len(t, diags, 1)
	assert.Equal(t, "errfrom:source is only allowed on struct fields", diags[0].Message())
}

func TestParseDeclsIgnoresStrayFieldTags(t *testing.T) {
	decls, diags := parseDecls(t, `package p

type Lonely struct{ Err error `+"`errfrom:\"source\"`"+` }
`)
	assert.Empty(t, decls)
	assert.Empty(t, diags)
}
