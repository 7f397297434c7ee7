package usecases

import "example.com/Onion/domain"

//errfrom:union
type Error interface {
	error
	usecasesError()
}

//errfrom:context "domain rejected the request"
type Domain struct {
	Msg   string
	Cause domain.Error `errfrom:"source"`
}

func (e Domain) Error() string { return e.Msg }
func (Domain) usecasesError()  {}

func Rename(name string) Error {
	if err := domain.Validate(name); err != nil {
		return ErrorFromError(err)
	}
	return nil
}
