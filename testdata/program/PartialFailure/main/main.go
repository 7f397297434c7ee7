package main

import "fmt"

type Cause struct{}

func (Cause) Error() string { return "cause" }

//errfrom:union
type Good interface{ good() }

//errfrom:context "good"
type G struct {
	Msg string
	Err Cause `errfrom:"source"`
}

func (G) good() {}

//errfrom:union
type Bad interface{ bad() }

//errfrom:context "bad"
type B struct {
	First  Cause `errfrom:"source"`
	Second Cause `errfrom:"source"`
}

func (B) bad() {}

func main() {
	fmt.Println(GoodFromCause(Cause{}).(G).Msg)
}
