// Command analytics calcula y exporta reportes sin levantar el servidor HTTP,
// contra la base configurada o contra un archivo de fixtures JSON.
//
//	analytics report rfm --company <uuid> --start 2026-01-01 --format xlsx --out rfm.xlsx
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
	"github.com/jhoicas/pos-analytics/pkg/config"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "analytics",
		Usage: "Reportes de analítica del POS desde la línea de comandos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "fixtures",
				Usage:   "Archivo JSON {company_id: {customers, products, sales}} en lugar de PostgreSQL",
				EnvVars: []string{"ANALYTICS_FIXTURES"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			// Los logs van a stderr para no mezclarse con el reporte en stdout.
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
			c.App.Metadata = map[string]interface{}{metaConfig: cfg, metaLogger: log}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:        "report",
				Usage:       "Calcula un reporte y lo escribe como JSON, CSV, XLSX o PDF",
				Subcommands: reportCommands(),
			},
			{
				Name:   "reports",
				Usage:  "Lista los reportes disponibles",
				Action: listReports,
			},
			{
				Name:  "token",
				Usage: "Emite un JWT firmado con JWT_SECRET para pruebas locales",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company", Usage: "UUID de la empresa", Required: true},
					&cli.StringFlag{Name: "user", Usage: "UUID del usuario", Value: "00000000-0000-0000-0000-000000000000"},
					&cli.StringFlag{Name: "role", Usage: "Rol del usuario", Value: "admin"},
				},
				Action: issueToken,
			},
		},
	}
}

// reportCommands un subcomando por reporte exportable, todos con los mismos flags.
func reportCommands() []*cli.Command {
	names := appexport.Reports()
	cmds := make([]*cli.Command, 0, len(names))
	for _, name := range names {
		cmds = append(cmds, &cli.Command{
			Name:  name,
			Usage: "Reporte " + name,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "company", Usage: "UUID de la empresa", Required: true, EnvVars: []string{"COMPANY_ID"}},
				&cli.StringFlag{Name: "start", Usage: "Inicio del período (YYYY-MM-DD)"},
				&cli.StringFlag{Name: "end", Usage: "Fin del período (YYYY-MM-DD)"},
				&cli.StringFlag{Name: "format", Usage: "json | csv | xlsx | pdf", Value: formatJSON},
				&cli.StringFlag{Name: "out", Usage: "Archivo de salida; vacío = stdout"},
				&cli.IntFlag{Name: "top-n", Usage: "Máx. pares de afinidad"},
				&cli.IntFlag{Name: "limit", Usage: "Máx. productos del pronóstico"},
			},
			Action: runReport,
		})
	}
	return cmds
}
