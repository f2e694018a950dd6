// Command dentract extracts patient records from scanned intake forms.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/dentract/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dentract/internal/adapters/driven/export/xlsx"
	"github.com/custodia-labs/dentract/internal/adapters/driven/ocr/tesseract"
	"github.com/custodia-labs/dentract/internal/adapters/driven/ocr/textfile"
	"github.com/custodia-labs/dentract/internal/adapters/driven/storage/csv"
	"github.com/custodia-labs/dentract/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dentract/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dentract/internal/adapters/driving/cli"
	"github.com/custodia-labs/dentract/internal/core/ports/driven"
	"github.com/custodia-labs/dentract/internal/core/services"
	"github.com/custodia-labs/dentract/internal/extractor"
	"github.com/custodia-labs/dentract/internal/logger"
	"github.com/custodia-labs/dentract/internal/normalisers/whitespace"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters for configDir into the services.
func bootstrap(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	ext, err := extractor.New(extractor.WithDayFirst(settings.Extract.DayFirst))
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}

	recognisers := []driven.TextRecogniser{
		textfile.New(),
		tesseract.New(tesseract.Config{
			Command:           settings.OCR.Command,
			RequestsPerSecond: settings.OCR.Rate,
			BurstSize:         settings.OCR.Burst,
		}),
	}

	var sinks []driven.RecordSink
	if settings.Storage.CSVPath != "" {
		sinks = append(sinks, csv.NewSink(settings.Storage.CSVPath))
	}

	var (
		store   driven.ScanStore
		closeFn func() error
	)
	if settings.Storage.SQLite {
		sqliteStore, err := sqlite.NewStore(filepath.Join(filepath.Dir(configStore.Path()), "data"))
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		logger.Debug("store: %s", sqliteStore.Path())
		store = sqliteStore
		closeFn = sqliteStore.Close
	} else {
		// Records only live for this process.
		store = memory.NewScanStore()
	}
	sinks = append(sinks, store)

	return &cli.Services{
		Intake:   services.NewIntakeService(whitespace.New(), ext, recognisers, sinks),
		Records:  services.NewRecordService(store, xlsx.NewExporter()),
		Settings: settingsService,
		Close:    closeFn,
	}, nil
}
