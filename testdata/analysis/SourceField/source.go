package sourcefield

type Cause struct{}

func (Cause) Error() string { return "cause" }

//errfrom:union
type Missing interface{ missing() }

//errfrom:context "missing"
type M struct { // want `Missing.M: errfrom:context requires a source field marked with errfrom:"source"`
	Msg string
	Err Cause
}

func (M) missing() {}

//errfrom:union
type Ambiguous interface{ ambiguous() }

//errfrom:context "ambiguous"
type A struct {
	First  Cause `errfrom:"source"`
	Second Cause `errfrom:"source"` // want `Ambiguous.A: errfrom:context requires exactly one source field, found 2 \(First, Second\)`
}

func (A) ambiguous() {}

//errfrom:union
type AmbiguousComment interface{ ambiguousComment() }

//errfrom:context ""
type AC struct {
	//errfrom:source
	First  Cause
	Second Cause //errfrom:source // want `AmbiguousComment.AC: errfrom:context requires exactly one source field, found 2 \(First, Second\)`
}

func (*AC) ambiguousComment() {}

//errfrom:union
type Blank interface{ blank() }

//errfrom:context "blank"
type B struct {
	Msg string
	_   Cause `errfrom:"source"` // want `Blank.B: blank field cannot be the source`
}

func (B) blank() {}

// Only the first failure of a union is reported.
//
//errfrom:union
type FirstOnly interface{ firstOnly() }

//errfrom:context "first"
type F1 struct{ Err Cause } // want `FirstOnly.F1: errfrom:context requires a source field`

func (F1) firstOnly() {}

//errfrom:context "second"
type F2 struct{ Err Cause }

func (F2) firstOnly() {}
