package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// FieldViolation una regla de validación incumplida sobre un campo concreto.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa TODAS las violaciones de un create/update, no solo la primera.
// El caller recibe la lista completa para poder mostrarla de una vez.
type ValidationError struct {
	Violations []FieldViolation
}

// Error implementa error uniendo los mensajes de cada violación.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validación: " + strings.Join(msgs, "; ")
}

// Add acumula una violación.
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// HasViolations indica si hay al menos una violación acumulada.
func (e *ValidationError) HasViolations() bool { return len(e.Violations) > 0 }

// InsufficientStockError se retorna cuando un uso pide más de lo disponible.
// Incluye la cantidad disponible para que el caller la muestre al usuario.
type InsufficientStockError struct {
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s", e.Available.String())
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
