package valid

import (
	"fmt"
	"io/fs"
)

type NotFound struct{ ID int }

func (e NotFound) Error() string { return fmt.Sprintf("record %d not found", e.ID) }

//errfrom:union
type AppError interface {
	error
	appError()
}

//errfrom:context "use case error" // trailing comments are ignored
type Wrapped struct {
	Msg string
	Err NotFound `json:"err" errfrom:"source"`
}

func (e Wrapped) Error() string { return e.Msg }
func (Wrapped) appError()       {}

//errfrom:type *fs.PathError
type Upstream struct{ Msg string }

func (e *Upstream) Error() string { return e.Msg }
func (*Upstream) appError()       {}

// Unannotated variants are skipped.
type Plain struct {
	Err error `errfrom:"source"`
}

func (Plain) Error() string { return "plain" }
func (Plain) appError()     {}

// Source tags outside of variants are ignored.
type Record struct {
	Err error `errfrom:"source"`
}

func Open(name string) error {
	return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
