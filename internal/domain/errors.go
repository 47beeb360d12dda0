package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrExportForbidden = errors.New("sin permiso para exportar datos")
	ErrUnknownFormat   = errors.New("formato de exportación no soportado")
	ErrUnknownPolicy   = errors.New("política de valoración desconocida")
)
