package analytics

import "slices"

// Score puntaje entero de 1 (peor) a 5 (mejor).
type Score int

// Quintiles los 4 puntos de corte que dividen una población en 5 grupos de igual tamaño.
type Quintiles[T any] [4]T

// ComputeQuintiles ordena una copia de values y toma los elementos en los
// índices ⌊n×0.2⌋, ⌊n×0.4⌋, ⌊n×0.6⌋ y ⌊n×0.8⌋.
// Con un solo valor los cuatro cortes colapsan en él. Devuelve ok=false si
// values está vacío: el llamador no debe puntuar una población vacía.
func ComputeQuintiles[T any](values []T, cmp func(a, b T) int) (q Quintiles[T], ok bool) {
	n := len(values)
	if n == 0 {
		return q, false
	}
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, cmp)
	for i := range q {
		q[i] = sorted[n*(i+1)/5]
	}
	return q, true
}

// ScoreAscending puntúa donde menor es mejor (recencia):
// ≤q1 → 5, ≤q2 → 4, ≤q3 → 3, ≤q4 → 2, resto → 1.
func ScoreAscending[T any](v T, q Quintiles[T], cmp func(a, b T) int) Score {
	for i := range q {
		if cmp(v, q[i]) <= 0 {
			return Score(5 - i)
		}
	}
	return 1
}

// ScoreDescending puntúa donde mayor es mejor (frecuencia y monto):
// ≥q4 → 5, ≥q3 → 4, ≥q2 → 3, ≥q1 → 2, resto → 1.
func ScoreDescending[T any](v T, q Quintiles[T], cmp func(a, b T) int) Score {
	for i := len(q) - 1; i >= 0; i-- {
		if cmp(v, q[i]) >= 0 {
			return Score(i + 2)
		}
	}
	return 1
}
