package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError error de validación con el campo que lo causó.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite detectar ValidationError como ErrInvalidInput con errors.Is.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidation construye un ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError un material no alcanza para cubrir la salida solicitada.
// Required es la cantidad pedida (valor absoluto del delta), Available el stock actual.
type InsufficientStockError struct {
	MaterialID int64
	Required   decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("material %d sin stock suficiente (requiere %s, disponible %s)",
		e.MaterialID, e.Required.String(), e.Available.String())
}

// Is permite detectarlo como ErrInsufficientStock con errors.Is.
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ShortageItem detalle de faltante de un material para completar una tarea.
type ShortageItem struct {
	MaterialID   int64
	MaterialName string
	Unit         string
	Required     decimal.Decimal
	Available    decimal.Decimal
	Shortfall    decimal.Decimal
}

// ShortageError faltantes detectados antes de completar una tarea. No se mutó nada.
type ShortageError struct {
	TaskID int64
	Items  []ShortageItem
}

func (e *ShortageError) Error() string {
	names := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		names = append(names, fmt.Sprintf("%s (falta %s)", it.MaterialName, it.Shortfall.String()))
	}
	return fmt.Sprintf("tarea %d con faltantes de material: %s", e.TaskID, strings.Join(names, ", "))
}

// Is permite detectarlo como ErrInsufficientStock con errors.Is.
func (e *ShortageError) Is(target error) bool { return target == ErrInsufficientStock }

// StateTransitionError transición de estado no permitida desde el estado actual.
type StateTransitionError struct {
	Entity string // "tarea" | "compra"
	ID     int64
	From   string
	To     string
	Reason string
}

func (e *StateTransitionError) Error() string {
	msg := fmt.Sprintf("%s %d: transición de estado no permitida (%s -> %s)", e.Entity, e.ID, e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// MaterialRef referencia mínima a un material para mensajes de error.
type MaterialRef struct {
	ID   int64
	Name string
}

// NoSupplierError materiales sin proveedor activo que los ofrezca.
// Acumula todos los materiales faltantes para reportarlos en un solo mensaje.
type NoSupplierError struct {
	Materials []MaterialRef
}

func (e *NoSupplierError) Error() string {
	names := make([]string, 0, len(e.Materials))
	for _, m := range e.Materials {
		if m.Name != "" {
			names = append(names, fmt.Sprintf("%s (ID:%d)", m.Name, m.ID))
		} else {
			names = append(names, fmt.Sprintf("ID:%d", m.ID))
		}
	}
	return "los siguientes materiales no tienen proveedor disponible: " + strings.Join(names, ", ") +
		". Registre la relación material-proveedor o reactive la cooperación."
}

// Is permite detectarlo como ErrNotFound con errors.Is.
func (e *NoSupplierError) Is(target error) bool { return target == ErrNotFound }

// StorageError falla de la capa de persistencia (transacción o conexión).
// Conserva la causa original para diagnóstico; Unwrap habilita errors.Is/As.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("error de almacenamiento (%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
