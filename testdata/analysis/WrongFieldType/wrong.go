package wrongfieldtype

type Cause struct{}

func (Cause) Error() string { return "cause" }

//errfrom:union
type E1 interface{ e1() }

//errfrom:type Cause
type Code struct{ Code int } // want `E1.Code: errfrom:type requires a single string field, found Code int`

func (Code) e1() {}

//errfrom:union
type E2 interface{ e2() }

//errfrom:type Cause
type Two struct { // want `E2.Two: errfrom:type requires a single string field, found 2 fields`
	A string
	B string
}

func (Two) e2() {}

//errfrom:union
type E3 interface{ e3() }

type Text string

//errfrom:type error
type Named struct{ Msg Text } // want `E3.Named: errfrom:type requires a single string field, found Msg Text`

func (Named) e3() {}

//errfrom:union
type E4 interface{ e4() }

//errfrom:type Cause
type None struct{} // want `E4.None: errfrom:type requires a single string field, found 0 fields`

func (None) e4() {}

//errfrom:union
type E5 interface{ e5() }

//errfrom:context "ctx"
type Counted struct {
	Count int // want `E5.Counted: errfrom:context stores the context message in Count, but its type is int`
	Err   Cause `errfrom:"source"`
}

func (Counted) e5() {}
