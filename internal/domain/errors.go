package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio. El transporte HTTP mapea cada Kind a
// su código de estado; los casos de uso nunca degradan un Kind a otro.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindForbidden          Kind = "forbidden"
	KindQuotaOfferActive   Kind = "quota_offer_active"
	KindQuotaOfferFeatured Kind = "quota_offer_featured"
	KindQuotaLocation      Kind = "quota_location"
	KindValidation         Kind = "validation"
	KindConflict           Kind = "conflict"
	KindDependency         Kind = "dependency_failure"
)

// Error es el resultado estructurado de un rechazo: tipo + mensaje humano +
// campos máquina (missing_fields, ceiling, plan...). Sin dependencias externas.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap expone la causa para errors.Is/As (solo dependency_failure la lleva).
func (e *Error) Unwrap() error { return e.cause }

// NotFound: recurso ausente, con borrado lógico, o fuera del alcance del
// principal en lecturas (se colapsa a propósito para no revelar existencia).
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " no encontrado"}
}

// Forbidden: el recurso existe pero el principal no tiene permiso.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Validation: campos requeridos ausentes o malformados. Nunca llega a AccessScope.
func Validation(msg string, missing ...string) *Error {
	e := &Error{Kind: KindValidation, Message: msg}
	if len(missing) > 0 {
		e.Fields = map[string]any{"missing_fields": missing}
	}
	return e
}

// Conflict: estado duplicado (ej. email ya registrado).
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// QuotaExceeded: tope de plan alcanzado. kind debe ser uno de los Kind quota_*.
// Lleva ceiling y plan para que el mensaje al usuario sea accionable.
func QuotaExceeded(kind Kind, msg string, ceiling int, plan string) *Error {
	return &Error{
		Kind:    kind,
		Message: msg,
		Fields:  map[string]any{"ceiling": ceiling, "plan": plan},
	}
}

// Dependency: fallo de un colaborador externo (repositorio, media store).
// Se propaga siempre; nunca se traga ni se degrada.
func Dependency(op string, cause error) *Error {
	return &Error{Kind: KindDependency, Message: "fallo de dependencia en " + op, cause: cause}
}

// AsError extrae el *Error estructurado si err lo es (directo o envuelto).
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind informa si err es un error de dominio del tipo dado.
func IsKind(err error, kind Kind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == kind
}
