package main

import "fmt"

type NotFound struct{ ID int }

func (e NotFound) Error() string { return fmt.Sprintf("record %d not found", e.ID) }

type Timeout struct{}

func (Timeout) Error() string { return "timed out" }

//errfrom:union
type AppError interface {
	error
	appError()
}

//errfrom:context "use case error"
type Wrapped struct {
	Msg string
	Err NotFound `errfrom:"source"`
}

func (e Wrapped) Error() string { return e.Msg }
func (Wrapped) appError()       {}

//errfrom:context "100% broken"
type Broken struct {
	Reason string
	_      struct{}
	Detail any
	//errfrom:source
	Cause Timeout
}

func (e Broken) Error() string { return e.Reason }
func (Broken) appError()       {}

// Plain is not annotated. Its source tag is ignored.
type Plain struct {
	Err error `errfrom:"source"`
}

func (e Plain) Error() string { return "plain" }
func (Plain) appError()       {}

func main() {
	var err AppError = AppErrorFromNotFound(NotFound{ID: 42})
	fmt.Println(err)
	fmt.Println(err.(Wrapped).Err.ID)

	err = AppErrorFromTimeout(Timeout{})
	broken := err.(Broken)
	fmt.Println(broken.Reason)
	fmt.Println(broken.Detail)
	fmt.Printf("%#v\n", broken.Cause)
}
