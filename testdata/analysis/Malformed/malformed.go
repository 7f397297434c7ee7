package malformed

type Cause struct{}

func (Cause) Error() string { return "cause" }

//errfrom:union now // want `errfrom:union takes no arguments, found now`
type U1 interface{ u1() }

//errfrom:union
type U2 interface{ u2() }

//errfrom:contxt "typo" // want `unknown directive errfrom:contxt; did you mean errfrom:context\?`
type V2 struct {
	Err Cause `errfrom:"source"`
}

func (V2) u2() {}

//errfrom:union
type U3 interface{ u3() }

//errfrom:context "a"
//errfrom:type Cause // want `U3.V3: errfrom:type conflicts with errfrom:context`
type V3 struct{ Msg string }

func (V3) u3() {}

//errfrom:union
type U4 interface{ u4() }

//errfrom:context use case // want `U4.V4: errfrom:context: context must be a quoted string, got use case`
type V4 struct {
	Err Cause `errfrom:"source"`
}

func (V4) u4() {}

//errfrom:union
type U5 interface{ u5() }

//errfrom:context "not a struct"
type V5 int // want `U5.V5: errfrom:context requires a struct type, found int`

func (V5) u5() {}

//errfrom:union
type U6 interface{ u6() }

//errfrom:type Cause
type V6 struct {
	Msg string `errfrom:"source"` // want `U6.V6: errfrom:"source" is not allowed with errfrom:type`
}

func (V6) u6() {}

//errfrom:union
type U7 interface{ u7() }

//errfrom:type Nope // want `U7.V7: cannot resolve Nope: undefined: Nope`
type V7 struct{ Msg string }

func (V7) u7() {}

//errfrom:union
type U8 interface{ u8() }

//errfrom:context "ctx"
type V8 struct {
	Err Cause `errfrom:"sorce"` // want `unknown directive errfrom:sorce; did you mean errfrom:source\?`
}

func (V8) u8() {}

//errfrom:union
//errfrom:context "ctx" // want `errfrom:context is not allowed on union U9; annotate its variants instead`
type U9 interface{ u9() }

//errfrom:union
type U10 interface{ u10() }

//errfrom:type Cause
//errfrom:type Cause // want `U10.V10: duplicate errfrom:type`
type V10 struct{ Msg string }

func (V10) u10() {}

//errfrom:context "stray" // want `errfrom:context on Lonely, which implements no union in this package`
type Lonely struct{ Err Cause }

//errfrom:source // want `errfrom:source is only allowed on struct fields`
type Sourced struct{}

//errfrom:union
type U11 interface{ u11() }

type V11 struct {
	Err Cause `errfrom:"sorce"` // want `unknown directive errfrom:sorce; did you mean errfrom:source\?`
}

func (V11) u11() {}

//errfrom:union
type U12 interface{ u12() }

type V12 struct {
	Why Cause //errfrom:contxt "x" // want `unknown directive errfrom:contxt; did you mean errfrom:context\?`
}

func (V12) u12() {}
