package entity

// Customer representa un cliente del POS con sus ventas completadas
// ordenadas ascendentemente por fecha.
type Customer struct {
	ID    string
	Name  string
	Sales []Sale
}
