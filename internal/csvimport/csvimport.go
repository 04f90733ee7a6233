// Package csvimport reads ledger records from header-less CSV files with the
// columns date, description, amount, kind and category.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldCount is the number of columns in every row.
const FieldCount = 5

// rowNamespace seeds the name-based ids of imported rows.
var rowNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Veraticus/fino/csvimport"))

// RowID derives a stable id for the occurrence-th row with r's values, so
// importing the same file twice yields the same ids while identical rows
// within one file stay distinct.
func RowID(r model.Record, occurrence int) string {
	key := strings.Join([]string{
		r.Date.Format(model.DateLayout),
		r.Description,
		r.Amount.String(),
		string(r.Kind),
		r.Category,
		strconv.Itoa(occurrence),
	}, "\x1f")
	return uuid.NewSHA1(rowNamespace, []byte(key)).String()
}

// ParseFields builds a record with a fresh id from the five column values.
func ParseFields(fields []string) (model.Record, error) {
	if len(fields) != FieldCount {
		return model.Record{}, fmt.Errorf("%w: expected %d comma-separated fields but got %d",
			common.ErrInvalidRecord, FieldCount, len(fields))
	}
	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	fields = trimmed

	date, err := model.ParseDate(fields[0])
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: %w", common.ErrInvalidRecord, err)
	}

	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: invalid amount %q: provide a decimal number",
			common.ErrInvalidRecord, fields[2])
	}

	kind, err := model.ParseKind(fields[3])
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: %w", common.ErrInvalidRecord, err)
	}

	r := model.Record{
		ID:          uuid.NewString(),
		Date:        date,
		Description: fields[1],
		Amount:      amount,
		Kind:        kind,
		Category:    fields[4],
	}
	if err := storage.ValidateRecord(r); err != nil {
		return model.Record{}, err
	}
	return r, nil
}

// ParseLine parses a single "date,description,amount,kind,category" line.
func ParseLine(line string) (model.Record, error) {
	return ParseFields(strings.Split(strings.TrimSpace(line), ","))
}

// Parse reads every row of r. It stops at the first invalid row and reports
// its line number. Ids come from RowID, so re-reading the same input gives
// the same records.
func Parse(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var records []model.Record
	seen := make(map[string]int)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		line, _ := reader.FieldPos(0)
		record, err := ParseFields(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		key := RowID(record, 0)
		record.ID = RowID(record, seen[key])
		seen[key]++
		records = append(records, record)
	}
	return records, nil
}
