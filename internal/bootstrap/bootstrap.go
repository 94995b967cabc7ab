package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/config"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/classify"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/usecase"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/infrastructure/catalog/googlebooks"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/infrastructure/extractor/pdfmeta"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/infrastructure/library/memory"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/infrastructure/resilience"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/infrastructure/storage/localfs"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/observability/metrics"
)

// App wires the session-scoped library service: local upload storage, PDF
// metadata extraction, keyword/catalog classification and in-memory library
// views. All state dies with the process.
type App struct {
	Config  config.Config
	Metrics *metrics.HTTPServerMetrics

	UploadUC  *usecase.UploadDocumentUseCase
	LibraryUC *usecase.LibraryUseCase
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	storage, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	rules, err := classify.LoadRules(cfg.ClassifyRulesPath)
	if err != nil {
		return nil, fmt.Errorf("load classification rules: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	lookup := googlebooks.New(cfg.GoogleBooksURL, cfg.GoogleBooksAPIKey, cfg.LookupTimeout, executor)

	extractor := pdfmeta.NewExtractor(storage)
	classifier := classify.New(rules, lookup, logger)
	store := memory.New()

	return &App{
		Config:    cfg,
		Metrics:   metrics.NewHTTPServerMetrics("elibrary-api"),
		UploadUC:  usecase.NewUploadDocumentUseCase(storage, extractor, classifier, logger),
		LibraryUC: usecase.NewLibraryUseCase(store),
	}, nil
}
