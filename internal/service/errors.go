package service

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoEncontrado matches every NotFoundError through errors.Is.
var ErrNoEncontrado = errors.New("no encontrado")

var ErrCredencialesInvalidas = errors.New("credenciales invalidas")

// NotFoundError carries a user-facing message such as "Factura no encontrada".
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Is(target error) bool { return target == ErrNoEncontrado }

func noEncontrado(msg string) error { return &NotFoundError{Msg: msg} }

// ValidationError reports field-level problems keyed by JSON field name.
// It is returned before any store mutation.
type ValidationError struct {
	Campos map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Campos))
	for k := range e.Campos {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Campos[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// campos accumulates field errors; nil when nothing was added.
type campos map[string]string

func (c *campos) add(campo, msg string) {
	if *c == nil {
		*c = campos{}
	}
	if _, ok := (*c)[campo]; !ok {
		(*c)[campo] = msg
	}
}

func (c campos) err() error {
	if len(c) == 0 {
		return nil
	}
	return &ValidationError{Campos: c}
}
