package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidPeriod     = errors.New("período inválido")
	ErrUnknownReport     = errors.New("reporte desconocido")
	ErrUnsupportedFormat = errors.New("formato de exportación no soportado")
	ErrUnauthorized      = errors.New("no autorizado")
)
