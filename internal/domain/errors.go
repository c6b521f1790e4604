package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrTooManyAttempts    = errors.New("demasiados intentos fallidos")
	ErrWeakPassword       = errors.New("contraseña débil")
	ErrInvalidEmail       = errors.New("email inválido")
)

// ValidationError error de validación de un campo. Envuelve ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un error de campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors extrae los errores de campo de un error compuesto (errors.Join).
func ValidationErrors(err error) []*ValidationError {
	var out []*ValidationError
	var walk func(error)
	walk = func(e error) {
		switch x := e.(type) {
		case nil:
		case *ValidationError:
			out = append(out, x)
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return out
}

// DuplicateOperationError conflicto de número de operación para un banco (alerta de fraude).
// ExistingClient y ExistingAt describen la boleta ya registrada, si se pudo leer.
// Existing solo se informa cuando la boleta está dentro del alcance de quien consulta.
type DuplicateOperationError struct {
	Bank            string
	OperationNumber string
	ExistingID      string
	ExistingClient  string
	ExistingAt      time.Time
	Existing        *entity.DepositReceipt
}

func (e *DuplicateOperationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALERTA DE FRAUDE: El número de operación %q ya existe para el banco %q", e.OperationNumber, e.Bank)
	if !e.ExistingAt.IsZero() {
		fmt.Fprintf(&b, ". Registrado el %s", e.ExistingAt.Format("02/01/2006 15:04"))
		if e.ExistingClient != "" {
			fmt.Fprintf(&b, " por %s", e.ExistingClient)
		}
	}
	b.WriteString(".")
	return b.String()
}

// Unwrap permite errors.Is(err, ErrDuplicate).
func (e *DuplicateOperationError) Unwrap() error { return ErrDuplicate }
