package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/charmap"
)

// INEP microdata column names vary across exam years. Each target field
// maps to the header aliases seen in the wild, checked in order.
var columnAliases = map[string][]string{
	"item_id":    {"ID_ITEM", "CO_ITEM"},
	"area":       {"SG_AREA", "CO_PROVA"},
	"param_a":    {"NU_PARAM_A", "PARAM_A"},
	"param_b":    {"NU_PARAM_B", "PARAM_B"},
	"param_c":    {"NU_PARAM_C", "PARAM_C"},
	"answer_key": {"TX_GABARITO", "GABARITO"},
}

// provaAreaCodes maps numeric booklet codes (CO_PROVA) to area initials.
var provaAreaCodes = map[string]string{
	"511": "LC", "512": "CH", "513": "CN", "514": "MT",
	"1": "LC", "2": "CH", "3": "CN", "4": "MT",
}

const insertBatchSize = 500

// Record is one calibrated item row, validated before insert.
type Record struct {
	ItemID         int64   `validate:"required"`
	ExamYear       int     `validate:"required,gte=1998"`
	Area           string  `validate:"required,oneof=LC CH CN MT"`
	Discrimination float64 `validate:"gt=0"`
	Difficulty     float64
	Guessing       float64 `validate:"gte=0,lt=1"`
	AnswerKey      string  `validate:"required,len=1"`
}

// Summary reports what an import run did.
type Summary struct {
	Imported   int
	SkippedNil int // rows missing one or more 3PL parameters
	Rejected   int // rows failing validation
}

type Importer struct {
	db       *sql.DB
	validate *validator.Validate
}

func New(db *sql.DB) *Importer {
	return &Importer{db: db, validate: validator.New()}
}

// ImportFile imports an INEP microdata CSV. The files are distributed in
// Latin-1 with semicolon separators.
func (imp *Importer) ImportFile(ctx context.Context, path string, examYear int) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return imp.ImportCSV(ctx, charmap.ISO8859_1.NewDecoder().Reader(f), examYear)
}

// ImportCSV reads, validates, and upserts item records from r. Rows with
// missing 3PL parameters are skipped (most microdata rows are
// uncalibrated); rows failing validation are counted and logged but do
// not abort the run.
func (imp *Importer) ImportCSV(ctx context.Context, r io.Reader, examYear int) (*Summary, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	batch := make([]Record, 0, insertBatchSize)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rec, ok, err := parseRow(row, cols, examYear)
		if err != nil {
			slog.Debug("rejected row", "error", err)
			summary.Rejected++
			continue
		}
		if !ok {
			summary.SkippedNil++
			continue
		}

		if err := imp.validate.Struct(rec); err != nil {
			slog.Debug("rejected row", "item_id", rec.ItemID, "error", err)
			summary.Rejected++
			continue
		}

		batch = append(batch, rec)
		if len(batch) >= insertBatchSize {
			if err := imp.insertBatch(ctx, batch); err != nil {
				return nil, err
			}
			summary.Imported += len(batch)
			batch = batch[:0]
			slog.Info("import progress", "imported", summary.Imported)
		}
	}

	if len(batch) > 0 {
		if err := imp.insertBatch(ctx, batch); err != nil {
			return nil, err
		}
		summary.Imported += len(batch)
	}

	return summary, nil
}

// columnIndexes holds the resolved position of each target field.
type columnIndexes struct {
	itemID, area, paramA, paramB, paramC, answerKey int
	areaIsProvaCode                                 bool
}

func resolveColumns(header []string) (*columnIndexes, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	find := func(field string) (int, string, error) {
		for _, alias := range columnAliases[field] {
			if i, ok := index[alias]; ok {
				return i, alias, nil
			}
		}
		return 0, "", fmt.Errorf("no column found for %s (tried %s)",
			field, strings.Join(columnAliases[field], ", "))
	}

	cols := &columnIndexes{}
	var alias string
	var err error

	if cols.itemID, _, err = find("item_id"); err != nil {
		return nil, err
	}
	if cols.area, alias, err = find("area"); err != nil {
		return nil, err
	}
	cols.areaIsProvaCode = alias == "CO_PROVA"
	if cols.paramA, _, err = find("param_a"); err != nil {
		return nil, err
	}
	if cols.paramB, _, err = find("param_b"); err != nil {
		return nil, err
	}
	if cols.paramC, _, err = find("param_c"); err != nil {
		return nil, err
	}
	if cols.answerKey, _, err = find("answer_key"); err != nil {
		return nil, err
	}
	return cols, nil
}

// parseRow converts one CSV row into a Record. ok is false when the row
// has empty 3PL parameters, which is the normal case for uncalibrated
// items and not an error.
func parseRow(row []string, cols *columnIndexes, examYear int) (Record, bool, error) {
	get := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rawA, rawB, rawC := get(cols.paramA), get(cols.paramB), get(cols.paramC)
	if rawA == "" || rawB == "" || rawC == "" {
		return Record{}, false, nil
	}

	itemID, err := strconv.ParseInt(get(cols.itemID), 10, 64)
	if err != nil {
		return Record{}, false, fmt.Errorf("parse item id %q: %w", get(cols.itemID), err)
	}

	a, err := parseDecimal(rawA)
	if err != nil {
		return Record{}, false, fmt.Errorf("item %d: parse param_a: %w", itemID, err)
	}
	b, err := parseDecimal(rawB)
	if err != nil {
		return Record{}, false, fmt.Errorf("item %d: parse param_b: %w", itemID, err)
	}
	c, err := parseDecimal(rawC)
	if err != nil {
		return Record{}, false, fmt.Errorf("item %d: parse param_c: %w", itemID, err)
	}

	area := strings.ToUpper(get(cols.area))
	if cols.areaIsProvaCode {
		mapped, ok := provaAreaCodes[area]
		if !ok {
			return Record{}, false, fmt.Errorf("item %d: unknown prova code %q", itemID, area)
		}
		area = mapped
	}

	return Record{
		ItemID:         itemID,
		ExamYear:       examYear,
		Area:           area,
		Discrimination: a,
		Difficulty:     b,
		Guessing:       c,
		AnswerKey:      strings.ToUpper(get(cols.answerKey)),
	}, true, nil
}

// parseDecimal accepts both dot and comma decimal separators, as the
// microdata files mix them across years.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func (imp *Importer) insertBatch(ctx context.Context, batch []Record) error {
	tx, err := imp.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO official_items (id, exam_year, area, param_a, param_b, param_c, answer_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			exam_year = EXCLUDED.exam_year,
			area = EXCLUDED.area,
			param_a = EXCLUDED.param_a,
			param_b = EXCLUDED.param_b,
			param_c = EXCLUDED.param_c,
			answer_key = EXCLUDED.answer_key`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range batch {
		if _, err := stmt.ExecContext(ctx, rec.ItemID, rec.ExamYear, rec.Area,
			rec.Discrimination, rec.Difficulty, rec.Guessing, rec.AnswerKey); err != nil {
			return fmt.Errorf("insert item %d: %w", rec.ItemID, err)
		}
	}

	return tx.Commit()
}
