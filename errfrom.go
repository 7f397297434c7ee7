// Package errfrom documents the directives of the errfrom code generator.
//
// Errfrom eliminates the boilerplate of re-wrapping one layer's error into
// the next layer's error union. Mark a sealed interface as a union, annotate
// its variants, and the generator produces one conversion function per
// annotated variant. Misplaced or ambiguous annotations are diagnosed at
// generation time, so a broken declaration never produces code.
//
// # Unions
//
// A union is a named interface type with at least one method, marked with an
// errfrom:union directive. Its variants are the named concrete types in the
// same package that implement it:
//
//	//errfrom:union
//	type AppError interface {
//		error
//		appError()
//	}
//
//	type BadRequest struct{ Msg string }
//
//	func (BadRequest) appError() {}
//
// A variant without errfrom directives is left alone. If only the pointer of
// a type implements the union, the generated conversion returns a pointer.
//
// # Context mode
//
// errfrom:context names a context message. Exactly one field of the variant
// must be marked as the source, either with the struct tag errfrom:"source" or
// with a //errfrom:source field comment. The source field receives the
// original value unchanged, and every other field receives the message:
//
//	// source:
//	//errfrom:context "use case error"
//	type Wrapped struct {
//		Msg string
//		Err InnerError `errfrom:"source"`
//	}
//
//	// generated: (simplified)
//	func AppErrorFromInnerError(err InnerError) AppError {
//		return Wrapped{
//			Msg: fmt.Sprintf("use case error: %v", err),
//			Err: err,
//		}
//	}
//
// An empty context, errfrom:context "", stores fmt.Sprint(err) without a
// prefix.
//
// # Type mode
//
// errfrom:type names the source type directly. The variant must have exactly
// one field and it must be a string. Only the textual description of the
// source survives:
//
//	// source:
//	//errfrom:type usecases.Error
//	type Upstream struct{ Msg string }
//
//	// generated: (simplified)
//	func AppErrorFromError(err usecases.Error) AppError {
//		return Upstream{Msg: fmt.Sprint(err)}
//	}
//
// # Generating
//
// Run the errfrom command. It writes errfrom_gen.go into every package that
// declares at least one valid union:
//
//	go run github.com/errfrom/errfrom/cmd/errfrom ./...
//
// Packages are loaded with the build tag [BuildTag] and generated files are
// constrained by its negation, so a stale generated file never takes part in
// its own regeneration.
//
// Failures are reported with the position of the offending declaration,
// variant, field, or directive:
//
//	errors.go:12:6: AppError.Wrapped: errfrom:context requires exactly one source field, found 2 (Msg, Err)
//
// One failure stops generation for its union only. Other unions in the same
// package are still generated.
package errfrom

// BuildTag is set while loading packages and negated in generated files.
const BuildTag = "errfrom"

// GeneratedFile is the default name of the generated file in each package.
const GeneratedFile = "errfrom_gen.go"
