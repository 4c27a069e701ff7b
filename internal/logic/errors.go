package logic

import (
	"context"
	"errors"
	"go/token"
	"reflect"
)

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailTaken         = errors.New("user already registered")
	ErrNoSession          = errors.New("no active session")
)

// ErrorType names the first concrete error type in err's chain, walking from
// the outside in, e.g. "PgError" or "ConnectError". Links built by errors.New
// and fmt.Errorf, and unexported types, are skipped. A chain ending in a
// context error reports "DeadlineExceeded" or "Canceled"; anything else
// reports "Error".
func ErrorType(err error) string {
	if err == nil {
		return ""
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if name := concreteTypeName(e); name != "" {
			return name
		}
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "DeadlineExceeded"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	}
	return "Error"
}

func concreteTypeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.PkgPath() {
	case "errors", "fmt":
		return ""
	}
	name := t.Name()
	if name == "" || !token.IsExported(name) {
		return ""
	}
	return name
}
