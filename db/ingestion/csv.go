// Package ingestion loads phone_location CSV data into the lookup store.
// Strictly separated from generation: read → decode → batch insert.
package ingestion

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"phonegen/db"
	"phonegen/internal/errors"
	"phonegen/internal/logging"
)

// batchSize is the number of rows inserted per transaction.
const batchSize = 1000

// Status reports the state of the CSV source and the lookup store.
type Status struct {
	CSVExists   bool   `json:"csv_exists"`
	CSVPath     string `json:"csv_path"`
	DBExists    bool   `json:"db_exists"`
	DBPath      string `json:"db_path"`
	RecordCount int    `json:"record_count"`
}

// Result summarizes one import run.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Importer loads segment records from CSV into SQLite.
type Importer struct {
	csvPath string
	dbPath  string
}

// NewImporter creates an importer for the given source and target paths.
func NewImporter(csvPath, dbPath string) *Importer {
	return &Importer{csvPath: csvPath, dbPath: dbPath}
}

// CheckStatus reports whether the CSV exists and how many records the store holds.
func (im *Importer) CheckStatus(ctx context.Context) (Status, error) {
	status := Status{CSVPath: im.csvPath, DBPath: im.dbPath}

	if _, err := os.Stat(im.csvPath); err == nil {
		status.CSVExists = true
	}
	if _, err := os.Stat(im.dbPath); err != nil {
		return status, nil
	}
	status.DBExists = true

	store, err := db.Open(im.dbPath)
	if err != nil {
		return status, err
	}
	defer store.Close()

	status.RecordCount = recordCount(ctx, store.DB())
	return status, nil
}

// Import loads the CSV into the store. When the table is already populated
// the import is skipped unless force is set; force truncates first.
func (im *Importer) Import(ctx context.Context, force bool) (Result, error) {
	if _, err := os.Stat(im.csvPath); err != nil {
		return Result{}, errors.Wrapf(errors.TypeConfig, err, "CSV file not found: %s", im.csvPath)
	}

	store, err := db.Open(im.dbPath)
	if err != nil {
		return Result{}, err
	}
	defer store.Close()

	handle := store.DB()
	if err := createSchema(ctx, handle); err != nil {
		return Result{}, err
	}

	if existing := recordCount(ctx, handle); existing > 0 {
		if !force {
			logging.Logger.Info("lookup store already populated, skipping import",
				zap.Int("records", existing))
			return Result{Imported: existing}, nil
		}
		if _, err := handle.ExecContext(ctx, "DELETE FROM phone_location"); err != nil {
			return Result{}, errors.Database("truncate phone_location", err)
		}
		logging.Logger.Info("cleared existing lookup data", zap.Int("records", existing))
	}

	return im.load(ctx, handle)
}

func (im *Importer) load(ctx context.Context, handle *sql.DB) (Result, error) {
	f, err := os.Open(im.csvPath)
	if err != nil {
		return Result{}, errors.Wrap(errors.TypeConfig, "open CSV", err)
	}
	defer f.Close()

	reader := csv.NewReader(decodeReader(f))
	reader.FieldsPerRecord = -1

	// Header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return Result{}, errors.New(errors.TypeConfig, "CSV file is empty")
		}
		return Result{}, errors.Wrap(errors.TypeConfig, "read CSV header", err)
	}

	var (
		result Result
		batch  [][]string
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := insertBatch(ctx, handle, batch); err != nil {
			return err
		}
		result.Imported += len(batch)
		batch = batch[:0]
		logging.Logger.Debug("imported batch", zap.Int("total", result.Imported))
		return nil
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, errors.Wrap(errors.TypeConfig, "read CSV row", err)
		}
		if len(row) != 5 {
			result.Skipped++
			continue
		}
		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}
	if err := flush(); err != nil {
		return result, err
	}

	logging.Logger.Info("CSV import complete",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func insertBatch(ctx context.Context, handle *sql.DB, batch [][]string) error {
	tx, err := handle.BeginTx(ctx, nil)
	if err != nil {
		return errors.Database("begin transaction", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO phone_location (prefix, suffix, province, city, operator) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return errors.Database("prepare insert", err)
	}

	for _, row := range batch {
		if _, err := stmt.ExecContext(ctx, row[0], row[1], row[2], row[3], row[4]); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return errors.Database("insert row", err)
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return errors.Database("close statement", err)
	}
	return tx.Commit()
}

func createSchema(ctx context.Context, handle *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS phone_location (
			prefix TEXT NOT NULL,
			suffix TEXT NOT NULL,
			province TEXT NOT NULL,
			city TEXT NOT NULL,
			operator INTEGER NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS idx_prefix ON phone_location(prefix)",
		"CREATE INDEX IF NOT EXISTS idx_province_city ON phone_location(province, city)",
		"CREATE INDEX IF NOT EXISTS idx_operator ON phone_location(operator)",
		"CREATE INDEX IF NOT EXISTS idx_prefix_province_city ON phone_location(prefix, province, city)",
	}
	for _, stmt := range statements {
		if _, err := handle.ExecContext(ctx, stmt); err != nil {
			return errors.Database("create schema", err)
		}
	}
	return nil
}

func recordCount(ctx context.Context, handle *sql.DB) int {
	var count int
	if err := handle.QueryRowContext(ctx, "SELECT COUNT(*) FROM phone_location").Scan(&count); err != nil {
		return 0
	}
	return count
}

// decodeReader wraps r so that GB18030-encoded exports decode to UTF-8.
// UTF-8 input (with or without BOM) passes through untouched.
func decodeReader(f *os.File) io.Reader {
	head := make([]byte, 4096)
	n, _ := io.ReadFull(f, head)
	head = head[:n]
	rest := io.MultiReader(bytes.NewReader(head), f)

	if bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}) {
		// Strip the UTF-8 BOM
		return io.MultiReader(bytes.NewReader(head[3:]), f)
	}

	// The probe may cut a multi-byte rune at its boundary; trim up to three
	// trailing bytes before judging validity.
	probe := head
	for i := 0; i < 3 && len(probe) > 0 && !utf8.Valid(probe); i++ {
		probe = probe[:len(probe)-1]
	}
	if utf8.Valid(probe) {
		return rest
	}
	return transform.NewReader(rest, simplifiedchinese.GB18030.NewDecoder())
}
