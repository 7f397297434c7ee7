// Package annotation describes which errfrom directives are legal, where they
// may appear, and how their arguments are read.
//
// Directives are line comments in the style of //go: directives:
//
//	//errfrom:union
//	//errfrom:context "use case error"
//	//errfrom:type usecases.Error
//	//errfrom:source
//
// The source directive can also be written as a struct tag:
//
//	Err InnerError `errfrom:"source"`
//
// This package extracts directives as [Raw] tokens and parses the arguments of
// variant-level directives into an [Annotation]. It does not decide whether a
// directive makes sense where it was found. That is the validator's job.
package annotation

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/errfrom/errfrom/internal/lcs"
)

// Prefix starts every directive comment after "//".
const Prefix = "errfrom:"

// TagKey is the struct tag key for field directives.
const TagKey = "errfrom"

// Directive names.
const (
	Union   = "union"
	Context = "context"
	Type    = "type"
	Source  = "source"
)

// Level is where a directive may appear.
type Level uint8

const (
	// DeclLevel directives annotate the union declaration.
	DeclLevel Level = iota + 1

	// VariantLevel directives annotate a variant type declaration.
	VariantLevel

	// FieldLevel directives annotate a struct field of a variant.
	FieldLevel
)

func (l Level) String() string {
	switch l {
	case DeclLevel:
		return "union"
	case VariantLevel:
		return "variant"
	case FieldLevel:
		return "field"
	}
	return "unknown"
}

type rule struct {
	level Level
	args  bool
}

// model is never modified after initialization.
var model = map[string]rule{
	Union:   {DeclLevel, false},
	Context: {VariantLevel, true},
	Type:    {VariantLevel, true},
	Source:  {FieldLevel, false},
}

// LevelOf returns the level where the named directive belongs. It returns
// false for unknown directives.
func LevelOf(name string) (Level, bool) {
	r, ok := model[name]
	return r.level, ok
}

// TakesArgs reports whether the named directive expects arguments.
func TakesArgs(name string) bool {
	return model[name].args
}

// Names returns the names of all directives in order.
func Names() []string {
	return slices.Sorted(maps.Keys(model))
}

// Suggest returns the known directive name closest to an unknown one.
func Suggest(name string) (string, bool) {
	return lcs.Nearest(name, Names())
}

// Unknown describes a directive whose name is not known, suggesting the
// closest known name if there is one.
func Unknown(raw Raw) string {
	if s, ok := Suggest(raw.Name); ok {
		return fmt.Sprintf("unknown directive %s; did you mean %s%s?", raw, Prefix, s)
	}
	return fmt.Sprintf("unknown directive %s", raw)
}

// Raw is a directive as written, before its meaning is interpreted.
type Raw struct {
	Name string
	Args string

	// FromTag is true if the directive was written in a struct tag.
	FromTag bool

	NamePos token.Pos
	EndPos  token.Pos
}

func (r Raw) Pos() token.Pos { return r.NamePos }
func (r Raw) End() token.Pos { return r.EndPos }

// String returns the directive as it is referred to in messages, for example
// "errfrom:context".
func (r Raw) String() string { return Prefix + r.Name }

// FromComment extracts a directive from a single comment. It returns false if
// the comment is not an errfrom directive.
func FromComment(c *ast.Comment) (Raw, bool) {
	text, ok := strings.CutPrefix(c.Text, "//"+Prefix)
	if !ok {
		return Raw{}, false
	}

	name, args := text, ""
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		name, args = text[:i], text[i+1:]
	}

	return Raw{
		Name:    name,
		Args:    stripComment(strings.TrimSpace(args)),
		NamePos: c.Slash,
		EndPos:  c.End(),
	}, true
}

// FromCommentGroup extracts all directives from a comment group in order. A
// nil group has no directives.
func FromCommentGroup(g *ast.CommentGroup) []Raw {
	if g == nil {
		return nil
	}

	var raws []Raw
	for _, c := range g.List {
		if raw, ok := FromComment(c); ok {
			raws = append(raws, raw)
		}
	}
	return raws
}

// FromTag extracts directives from a struct tag such as `errfrom:"source"`.
// The value may list several comma-separated names. pos and end locate the tag
// in the source code.
func FromTag(tag string, pos, end token.Pos) []Raw {
	value, ok := reflect.StructTag(tag).Lookup(TagKey)
	if !ok {
		return nil
	}

	var raws []Raw
	for _, name := range strings.Split(value, ",") {
		raws = append(raws, Raw{
			Name:    strings.TrimSpace(name),
			FromTag: true,
			NamePos: pos,
			EndPos:  end,
		})
	}
	return raws
}

// stripComment removes a trailing "// comment" from directive arguments. A
// "//" inside a string literal does not start a comment.
func stripComment(args string) string {
	var quote byte
	for i := 0; i < len(args); i++ {
		ch := args[i]
		switch {
		case quote == '"' && ch == '\\':
			i++ // skip the escaped character
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '`':
			quote = ch
		case ch == '/' && i+1 < len(args) && args[i+1] == '/':
			return strings.TrimSpace(args[:i])
		}
	}
	return args
}

// Mode is the discriminant of an [Annotation].
type Mode uint8

const (
	// ContextMode wraps the source value in a source-marked field and
	// describes it with a context message in the other fields.
	ContextMode Mode = iota + 1

	// TypeMode stores the textual description of a named source type in the
	// only field.
	TypeMode
)

func (m Mode) String() string {
	switch m {
	case ContextMode:
		return Context
	case TypeMode:
		return Type
	}
	return "unknown"
}

// ModeOf returns the mode selected by a variant-level directive.
func ModeOf(name string) (Mode, bool) {
	switch name {
	case Context:
		return ContextMode, true
	case Type:
		return TypeMode, true
	}
	return 0, false
}

// Annotation is a variant-level directive with parsed arguments.
type Annotation struct {
	Mode Mode

	// Context is the context message in ContextMode. It may be empty.
	Context string

	// TypeExpr is the source type expression in TypeMode. It is parsed
	// without position information and must be resolved in the scope of the
	// annotated variant.
	TypeExpr ast.Expr

	Raw Raw
}

func (a Annotation) Pos() token.Pos { return a.Raw.Pos() }
func (a Annotation) End() token.Pos { return a.Raw.End() }

// Parse parses the arguments of a variant-level directive.
func Parse(raw Raw) (Annotation, error) {
	mode, ok := ModeOf(raw.Name)
	if !ok {
		return Annotation{}, fmt.Errorf("%s is not a variant directive", raw)
	}

	a := Annotation{Mode: mode, Raw: raw}
	switch mode {
	case ContextMode:
		s, err := ParseContext(raw.Args)
		if err != nil {
			return Annotation{}, fmt.Errorf("%s: %w", raw, err)
		}
		a.Context = s

	case TypeMode:
		expr, err := ParseType(raw.Args)
		if err != nil {
			return Annotation{}, fmt.Errorf("%s: %w", raw, err)
		}
		a.TypeExpr = expr
	}
	return a, nil
}

// ParseContext reads a Go string literal, either interpreted or raw.
func ParseContext(args string) (string, error) {
	if args == "" {
		return "", errors.New("missing context string")
	}

	lit, err := strconv.QuotedPrefix(args)
	if err != nil || lit[0] == '\'' {
		return "", fmt.Errorf("context must be a quoted string, got %s", args)
	}
	if rest := strings.TrimSpace(args[len(lit):]); rest != "" {
		return "", fmt.Errorf("unexpected %s after context string", rest)
	}

	s, err := strconv.Unquote(lit)
	if err != nil {
		return "", fmt.Errorf("context must be a quoted string, got %s", args)
	}
	return s, nil
}

// ParseType reads a Go type expression such as "Error", "*pkg.Error", or
// "pkg.Result[int]". Whether it denotes a type is only known after resolving
// it.
func ParseType(args string) (ast.Expr, error) {
	if args == "" {
		return nil, errors.New("missing source type")
	}

	expr, err := parser.ParseExpr(args)
	if err != nil {
		return nil, fmt.Errorf("cannot parse source type %s", args)
	}

	if !isTypeShaped(expr) {
		return nil, fmt.Errorf("%s is not a type", args)
	}
	return expr, nil
}

// isTypeShaped reports whether expr can syntactically denote a type.
func isTypeShaped(expr ast.Expr) bool {
	switch expr := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := expr.X.(*ast.Ident)
		return ok
	case *ast.StarExpr:
		return isTypeShaped(expr.X)
	case *ast.IndexExpr:
		return isTypeShaped(expr.X) && isTypeShaped(expr.Index)
	case *ast.IndexListExpr:
		for _, index := range expr.Indices {
			if !isTypeShaped(index) {
				return false
			}
		}
		return isTypeShaped(expr.X)
	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.InterfaceType, *ast.StructType:
		return true
	}
	return false
}
