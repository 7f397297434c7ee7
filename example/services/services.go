// Package services wraps the store with the operations the domain needs.
package services

import (
	"fmt"

	"example.com/errfromexample/core"
)

//errfrom:union
type ServiceError interface {
	error
	serviceError()
}

//errfrom:context "core error"
type Core struct {
	Msg   string
	Cause core.StoreError `errfrom:"source"`
}

func (e Core) Error() string { return e.Msg }
func (Core) serviceError()   {}

// Processing is built by hand where a store error deserves a better
// message than the generic one.
type Processing struct{ Msg string }

func (e Processing) Error() string { return e.Msg }
func (Processing) serviceError()   {}

type Users struct{ store *core.Store }

func NewUsers(store *core.Store) *Users {
	return &Users{store: store}
}

func (u *Users) Rename(id, name string) ServiceError {
	if _, err := u.store.Get(id); err != nil {
		if nf, ok := err.(core.NotFound); ok {
			return Processing{Msg: fmt.Sprintf("user %s could not be found in the system", nf.ID)}
		}
		return ServiceErrorFromStoreError(err)
	}
	if err := u.store.Put(id, name); err != nil {
		return ServiceErrorFromStoreError(err)
	}
	return nil
}
