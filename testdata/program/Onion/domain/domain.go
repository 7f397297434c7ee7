package domain

import "fmt"

//errfrom:union
type Error interface {
	error
	domainError()
}

type InvalidName struct{ Name string }

func (e InvalidName) Error() string { return fmt.Sprintf("invalid name %q", e.Name) }
func (InvalidName) domainError()    {}

func Validate(name string) Error {
	if name == "" {
		return InvalidName{Name: name}
	}
	return nil
}
