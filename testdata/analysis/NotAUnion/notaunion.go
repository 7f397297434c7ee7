package notaunion

//errfrom:union
type Struct struct{} // want `cannot use Struct as union: it is a struct type, not an interface`

//errfrom:union
type Empty interface{} // want `cannot use Empty as union: it has no methods`

//errfrom:union
type Generic[T any] interface{ get() T } // want `cannot use Generic as union: it is generic`

//errfrom:union
type Constraint interface { // want `cannot use Constraint as union: it is a constraint interface`
	~int
	m()
}

//errfrom:union
type Alias = error // want `cannot use Alias as union: it is an alias`

//errfrom:union
type Number int // want `cannot use Number as union: it is int, not an interface`

//errfrom:union
type Func func() // want `cannot use Func as union: it is a function type, not an interface`

// Directives on other types are not reported while a union is broken.
//
//errfrom:context "maybe a variant"
type Orphan struct{ Err error }

//errfrom:union
type Sealed interface{ sealed() }
