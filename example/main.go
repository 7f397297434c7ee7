// Command errfromexample renames users through five layers. Each layer has its
// own error union and converts the errors of the layer beneath with code
// generated by errfrom.
package main

//go:generate go tool errfrom ./...

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/errfromexample/api"
	"example.com/errfromexample/core"
	"example.com/errfromexample/services"
	"example.com/errfromexample/usecases"
)

func main() {
	store := core.NewStore(map[string]string{"1": "ada"})

	e := echo.New()
	api.Register(e, usecases.NewService(services.NewUsers(store)))

	// Output:
	// PUT /users/1 204
	// PUT /users/1 422 {"error":"cannot rename user: invalid name \" \""}
	// PUT /users/2 422 {"error":"cannot rename user: service failed: user 2 could not be found in the system"}
	// PUT /users/1 422 {"error":"cannot rename user: service failed: core error: store is closed"}
	put(e, "/users/1", `{"name":"grace"}`)
	put(e, "/users/1", `{"name":" "}`)
	put(e, "/users/2", `{"name":"bob"}`)

	store.Close()
	put(e, "/users/1", `{"name":"ada"}`)
}

func put(e *echo.Echo, path, body string) {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	fmt.Println("PUT", path, rec.Code, strings.TrimSpace(rec.Body.String()))
}
