package api

import "example.com/Onion/usecases"

//errfrom:union
type Error interface{ apiError() }

//errfrom:type usecases.Error
type Internal struct{ Msg string }

func (Internal) apiError() {}

func Handle(name string) Error {
	if err := usecases.Rename(name); err != nil {
		return ErrorFromError(err)
	}
	return nil
}
