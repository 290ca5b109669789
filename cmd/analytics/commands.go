package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
	"github.com/jhoicas/pos-analytics/internal/application/inventory"
	"github.com/jhoicas/pos-analytics/internal/application/usecase"
	"github.com/jhoicas/pos-analytics/internal/domain/repository"
	infraexport "github.com/jhoicas/pos-analytics/internal/infrastructure/export"
	"github.com/jhoicas/pos-analytics/internal/infrastructure/memory"
	"github.com/jhoicas/pos-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-analytics/pkg/config"
	"github.com/jhoicas/pos-analytics/pkg/jwt"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

const (
	metaConfig = "config"
	metaLogger = "logger"
	formatJSON = "json"
)

func appConfig(c *cli.Context) *config.Config {
	cfg, _ := c.App.Metadata[metaConfig].(*config.Config)
	return cfg
}

func appLogger(c *cli.Context) *logger.Logger {
	if log, ok := c.App.Metadata[metaLogger].(*logger.Logger); ok {
		return log
	}
	return logger.Nop()
}

// openRepository usa los fixtures si se indicaron; si no, PostgreSQL.
// El closer libera la conexión.
func openRepository(ctx context.Context, c *cli.Context, cfg *config.Config) (repository.SalesAnalyticsRepository, func(), error) {
	if path := c.String("fixtures"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("abrir fixtures: %w", err)
		}
		defer f.Close()
		repo, err := memory.LoadJSON(f)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return postgres.NewAnalyticsRepository(pool), pool.Close, nil
}

func newExportUseCase(repo repository.SalesAnalyticsRepository, cfg *config.Config) (*appexport.ExportUseCase, error) {
	loc, err := cfg.Analytics.Location()
	if err != nil {
		return nil, err
	}
	settings := usecase.Settings{
		DefaultWindowDays: cfg.Analytics.DefaultWindowDays,
		DefaultTopN:       cfg.Analytics.DefaultTopN,
		MaxTopN:           cfg.Analytics.MaxTopN,
		RetentionMonths:   cfg.Analytics.RetentionMonths,
		Location:          loc,
	}
	// Sin caché: cada ejecución del CLI quiere datos frescos.
	analyticsUC := usecase.NewAnalyticsUseCase(repo, nil, settings)
	forecastUC := inventory.NewForecastUseCase(repo, nil, settings)
	return appexport.NewExportUseCase(analyticsUC, forecastUC, settings,
		infraexport.NewCSVWriter(),
		infraexport.NewXLSXWriter(),
		infraexport.NewPDFWriter(cfg.App.Name),
	), nil
}

func runReport(c *cli.Context) error {
	name := c.Command.Name
	companyID := c.String("company")
	if _, err := uuid.Parse(companyID); err != nil {
		return fmt.Errorf("--company debe ser un UUID: %w", err)
	}

	cfg := appConfig(c)
	log := appLogger(c)
	ctx := c.Context

	repo, closeRepo, err := openRepository(ctx, c, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	uc, err := newExportUseCase(repo, cfg)
	if err != nil {
		return err
	}

	req := dto.ExportRequest{
		Format:    strings.ToLower(c.String("format")),
		StartDate: c.String("start"),
		EndDate:   c.String("end"),
		TopN:      c.Int("top-n"),
		Limit:     c.Int("limit"),
	}

	var content []byte
	if req.Format == formatJSON {
		res, err := uc.Report(ctx, companyID, name, req)
		if err != nil {
			return err
		}
		if content, err = json.MarshalIndent(res, "", "  "); err != nil {
			return fmt.Errorf("codificar JSON: %w", err)
		}
		content = append(content, '\n')
	} else {
		file, err := uc.Export(ctx, companyID, name, req)
		if err != nil {
			return err
		}
		content = file.Content
	}

	if err := writeOutput(c.App.Writer, c.String("out"), content); err != nil {
		return err
	}

	log.Info().
		Str("report", name).
		Str("company_id", companyID).
		Str("format", req.Format).
		Int("bytes", len(content)).
		Msg("reporte generado")
	return nil
}

// writeOutput escribe en path o, si está vacío o es "-", en stdout.
func writeOutput(stdout io.Writer, path string, content []byte) error {
	if path == "" || path == "-" {
		if _, err := stdout.Write(content); err != nil {
			return fmt.Errorf("escribir salida: %w", err)
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	return writeAndClose(f, content)
}

// writeAndClose escribe y cierra; un fallo al cerrar también es un error.
func writeAndClose(w io.WriteCloser, content []byte) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cerrar salida: %w", cerr)
		}
	}()
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("escribir salida: %w", err)
	}
	return nil
}

func listReports(c *cli.Context) error {
	for _, name := range appexport.Reports() {
		fmt.Fprintln(c.App.Writer, name)
	}
	return nil
}

func issueToken(c *cli.Context) error {
	cfg := appConfig(c)
	companyID := c.String("company")
	if _, err := uuid.Parse(companyID); err != nil {
		return fmt.Errorf("--company debe ser un UUID: %w", err)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, c.String("user"), companyID, c.String("role"), cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, tok)
	return nil
}
