package main

import (
	"fmt"

	"example.com/TypeMode/usecases"
)

//errfrom:union
type APIError interface{ apiError() }

//errfrom:type usecases.Error
type Upstream struct{ Msg string }

func (Upstream) apiError() {}

// Unknown is a pointer variant.
//
//errfrom:type string
type Unknown struct {
	Text string
}

func (*Unknown) apiError() {}

func main() {
	fmt.Printf("%#v\n", APIErrorFromError(usecases.Error{Op: "save"}))

	u := APIErrorFromString("boom").(*Unknown)
	fmt.Println(u.Text)
}
