package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/pos-analytics/internal/application/ports"
	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
)

const reportKeyPrefix = "report"

// ReportKey arma la clave report:<name>:<company>:<sha1(params)>.
func ReportKey(name, companyID string, params ...string) string {
	sum := sha1.Sum([]byte(strings.Join(params, "|")))
	return fmt.Sprintf("%s:%s:%s:%s", reportKeyPrefix, name, companyID, hex.EncodeToString(sum[:]))
}

// PeriodKey arma la clave con el período ya resuelto y el día de referencia,
// así una ventana por defecto no reutiliza resultados de otro día.
func PeriodKey(name, companyID string, period analytics.Period, now time.Time, params ...string) string {
	base := []string{
		period.Start.Format(dateLayout),
		period.End.Format(dateLayout),
		now.In(period.End.Location()).Format(dateLayout),
	}
	return ReportKey(name, companyID, append(base, params...)...)
}

// Cached busca el reporte en la caché y, si no está, lo calcula y lo guarda.
// Los fallos de caché solo se registran: el reporte se recalcula.
func Cached[T any](ctx context.Context, cache ports.ReportCache, key string, compute func() (*T, error)) (*T, error) {
	if cache == nil {
		return compute()
	}

	if payload, ok, err := cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache: get failed")
	} else if ok {
		var out T
		if err := json.Unmarshal(payload, &out); err == nil {
			return &out, nil
		}
		log.Warn().Str("key", key).Msg("report cache: payload inválido, se recalcula")
	}

	out, err := compute()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(out)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache: encode failed")
		return out, nil
	}
	if err := cache.Set(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache: set failed")
	}
	return out, nil
}
