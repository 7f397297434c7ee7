package main

import "fmt"

type InnerError struct{ Msg string }

func (e InnerError) Error() string { return e.Msg }

//errfrom:union
type AppError interface{ appError() }

// The source field lost its marker and Err was renamed to Cause.
//
//errfrom:context "use case error"
type Wrapped struct {
	Msg   string
	Cause InnerError
}

func (Wrapped) appError() {}

func main() {
	var err AppError = Wrapped{Msg: "built by hand", Cause: InnerError{Msg: "cause"}}
	fmt.Println(err.(Wrapped).Msg)
}
