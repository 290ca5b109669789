// Package analytics contiene los algoritmos de analítica del POS como
// servicios de dominio puros: no acceden a la base de datos ni al reloj.
// Cada función recibe la foto de datos ya consultada y el instante "hoy"
// de la petición, y devuelve registros derivados efímeros.
//
//   - Quintiles y puntajes 1..5.
//   - Segmentación RFM (Recencia, Frecuencia, Monto).
//   - Ciclo de vida del cliente y retención mensual.
//   - Pronóstico de agotamiento de stock, alertas tempranas e inventario excedente.
//   - Afinidad entre productos (co-ocurrencia en la misma venta).
//   - Márgenes de ganancia por producto y categoría.
package analytics
