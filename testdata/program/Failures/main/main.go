package main

type Cause struct{}

func (Cause) Error() string { return "cause" }

//errfrom:union
type NotSealed struct{}

//errfrom:union
type Missing interface{ missing() }

//errfrom:context "missing"
type M struct{ Err Cause }

func (M) missing() {}

//errfrom:union
type Wrong interface{ wrong() }

//errfrom:type Cause
type W struct{ Code int }

func (W) wrong() {}

func main() {}
