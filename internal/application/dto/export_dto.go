package dto

// ExportRequest parámetros para GET /api/reports/:report/export.
type ExportRequest struct {
	Format    string `query:"format"` // csv | xlsx | pdf (default csv)
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	TopN      int    `query:"top_n"`
	Limit     int    `query:"limit"`
}

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
