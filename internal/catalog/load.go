package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/career-recommender/internal/types"
	"go.uber.org/zap"
)

// SourceKind identifies where a catalog is read from.
type SourceKind string

// Supported source kinds
const (
	SourceCSV      SourceKind = "csv"
	SourceXLSX     SourceKind = "xlsx"
	SourcePostgres SourceKind = "postgres"
	SourceS3       SourceKind = "s3"
)

// LoadOptions carries settings for the non-file sources.
type LoadOptions struct {
	Table    string       // PostgreSQL table, defaults to DefaultTable
	S3       S3Options    // used when S3Client is nil
	S3Client ObjectGetter // optional pre-built client
	Logger   *zap.Logger
}

// DetectSource classifies a catalog source string.
func DetectSource(source string) SourceKind {
	lower := strings.ToLower(source)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return SourcePostgres
	case strings.HasPrefix(lower, "s3://"):
		return SourceS3
	case isXLSX(lower):
		return SourceXLSX
	default:
		return SourceCSV
	}
}

// Load reads the catalog from source. Any failure is a *DataLoadError; callers
// must not serve requests from a partially loaded catalog.
func Load(ctx context.Context, source string, opts LoadOptions) ([]types.CareerRecord, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if source == "" {
		return nil, &DataLoadError{Message: "catalog source is empty"}
	}

	kind := DetectSource(source)
	records, err := loadFrom(ctx, kind, source, opts)
	if err != nil {
		var loadErr *DataLoadError
		if errors.As(err, &loadErr) && loadErr.Source == "" {
			loadErr.Source = redact(source)
		}
		return nil, err
	}

	logger.Info("catalog loaded",
		zap.String("source", redact(source)),
		zap.String("kind", string(kind)),
		zap.Int("careers", len(records)),
	)
	return records, nil
}

func loadFrom(ctx context.Context, kind SourceKind, source string, opts LoadOptions) ([]types.CareerRecord, error) {
	switch kind {
	case SourcePostgres:
		return LoadPostgres(ctx, source, opts.Table)
	case SourceS3:
		client := opts.S3Client
		if client == nil {
			c, err := NewS3Client(ctx, opts.S3)
			if err != nil {
				return nil, &DataLoadError{Message: "failed to create S3 client", Cause: err}
			}
			client = c
		}
		return LoadS3(ctx, client, source)
	default:
		return loadFile(kind, source)
	}
}

func loadFile(kind SourceKind, path string) ([]types.CareerRecord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &DataLoadError{Message: "failed to open catalog file", Cause: err}
	}
	defer f.Close()

	if kind == SourceXLSX {
		return ParseXLSX(f)
	}
	return ParseCSV(f)
}

// LoadStore loads the catalog and wraps it in a Store.
func LoadStore(ctx context.Context, source string, opts LoadOptions) (*Store, error) {
	records, err := Load(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	store, err := New(records)
	if err != nil {
		var loadErr *DataLoadError
		if errors.As(err, &loadErr) {
			loadErr.Source = redact(source)
		}
		return nil, err
	}
	return store, nil
}

func isXLSX(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// redact strips credentials from database URLs before they reach logs.
func redact(source string) string {
	if DetectSource(source) != SourcePostgres {
		return source
	}
	schemeEnd := strings.Index(source, "://")
	at := strings.LastIndex(source, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return source
	}
	return source[:schemeEnd+3] + "***" + source[at:]
}
