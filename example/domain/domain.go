// Package domain holds the rules about users.
package domain

import (
	"fmt"
	"strings"

	"example.com/errfromexample/services"
)

//errfrom:union
type DomainError interface {
	error
	domainError()
}

// Service wraps a failure of the services layer.
//
//errfrom:context "service failed"
type Service struct {
	Msg   string
	Cause services.ServiceError `errfrom:"source"`
}

func (e Service) Error() string { return e.Msg }
func (Service) domainError()    {}

type InvalidName struct{ Name string }

func (e InvalidName) Error() string { return fmt.Sprintf("invalid name %q", e.Name) }
func (InvalidName) domainError()    {}

func Rename(users *services.Users, id, name string) DomainError {
	if strings.TrimSpace(name) == "" {
		return InvalidName{Name: name}
	}
	if err := users.Rename(id, name); err != nil {
		return DomainErrorFromServiceError(err)
	}
	return nil
}
