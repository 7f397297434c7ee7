package main

import (
	"fmt"

	"example.com/Onion/api"
	"example.com/Onion/domain"
	"example.com/Onion/usecases"
)

func main() {
	fmt.Printf("%#v\n", api.Handle(""))
	fmt.Println(api.Handle("gopher") == nil)

	err := usecases.Rename("").(usecases.Domain)
	fmt.Println(err.Cause.(domain.InvalidName).Name == "")
}
