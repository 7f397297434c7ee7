package usecases

type Error struct{ Op string }

func (e Error) Error() string { return e.Op + " failed" }
