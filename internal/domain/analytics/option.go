package analytics

import (
	"encoding/json"
	"strconv"
)

// Recency días desde la última compra completada, o "nunca compró".
// Reemplaza el valor mágico 999 para que no se filtre en cálculos.
type Recency struct {
	days  int
	known bool
}

// RecencyOf construye una recencia conocida (días ≥ 0).
func RecencyOf(days int) Recency {
	if days < 0 {
		days = 0
	}
	return Recency{days: days, known: true}
}

// NeverPurchased recencia de un cliente sin compras en la ventana.
func NeverPurchased() Recency { return Recency{} }

// Days devuelve los días y ok=false si el cliente nunca compró.
func (r Recency) Days() (int, bool) { return r.days, r.known }

// MarshalJSON serializa los días o null.
func (r Recency) MarshalJSON() ([]byte, error) {
	if !r.known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(r.days)), nil
}

// UnmarshalJSON acepta un entero o null.
func (r *Recency) UnmarshalJSON(b []byte) error {
	var v *int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*r = NeverPurchased()
		return nil
	}
	*r = RecencyOf(*v)
	return nil
}

// DaysRemaining días hasta que ocurra un evento de stock (vaciarse, bajar del
// mínimo), o "nunca" cuando el consumo diario es cero.
// Reemplaza el valor mágico 9999.
type DaysRemaining struct {
	days   int
	finite bool
}

// InDays construye un plazo finito.
func InDays(days int) DaysRemaining {
	if days < 0 {
		days = 0
	}
	return DaysRemaining{days: days, finite: true}
}

// Never plazo infinito: sin consumo el evento no ocurre.
func Never() DaysRemaining { return DaysRemaining{} }

// Days devuelve los días y ok=false si el plazo es infinito.
func (d DaysRemaining) Days() (int, bool) { return d.days, d.finite }

// IsNever indica si el plazo es infinito.
func (d DaysRemaining) IsNever() bool { return !d.finite }

// Within indica si el plazo es finito y no supera n días.
func (d DaysRemaining) Within(n int) bool { return d.finite && d.days <= n }

// Less ordena plazos: los finitos ascendentemente, los infinitos al final.
func (d DaysRemaining) Less(o DaysRemaining) bool {
	if d.finite != o.finite {
		return d.finite
	}
	return d.days < o.days
}

// MarshalJSON serializa los días o null.
func (d DaysRemaining) MarshalJSON() ([]byte, error) {
	if !d.finite {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(d.days)), nil
}

// UnmarshalJSON acepta un entero o null.
func (d *DaysRemaining) UnmarshalJSON(b []byte) error {
	var v *int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*d = Never()
		return nil
	}
	*d = InDays(*v)
	return nil
}
