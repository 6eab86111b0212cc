package domain

import "errors"

// Errores de dominio (sin dependencias externas). Las validaciones se detectan
// antes de cualquier escritura y se devuelven tipadas; nunca se tragan.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Motor de entitlements.
	ErrUnknownModule     = errors.New("módulo no existe en el catálogo")
	ErrCoreModule        = errors.New("un módulo core no se puede desactivar")
	ErrNoCompanyAssigned = errors.New("usuario sin empresa asignada")
	ErrValidation        = errors.New("validación fallida")
	ErrPersistence       = errors.New("fallo de persistencia")
)
