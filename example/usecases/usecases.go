// Package usecases orchestrates the domain for the outer layers.
package usecases

import (
	"example.com/errfromexample/domain"
	"example.com/errfromexample/services"
)

//errfrom:union
type UseCaseError interface {
	error
	useCaseError()
}

//errfrom:context "cannot rename user"
type Domain struct {
	Msg   string
	Cause domain.DomainError `errfrom:"source"`
}

func (e Domain) Error() string { return e.Msg }
func (Domain) useCaseError()   {}

type Service struct{ users *services.Users }

func NewService(users *services.Users) *Service {
	return &Service{users: users}
}

func (s *Service) Rename(id, name string) UseCaseError {
	if err := domain.Rename(s.users, id, name); err != nil {
		return UseCaseErrorFromDomainError(err)
	}
	return nil
}
