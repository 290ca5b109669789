package ports

import "context"

// ReportCache define el puerto de salida para cachear reportes ya serializados.
// Las implementaciones (Redis, noop) guardan el JSON exacto de la respuesta.
// Un error de caché nunca debe impedir calcular el reporte.
type ReportCache interface {
	// Get devuelve el payload guardado y ok=false si no existe o expiró.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Set guarda el payload con el TTL configurado en el adaptador.
	Set(ctx context.Context, key string, payload []byte) error
}
