// Package bankimport turns bank statement CSV exports into transaction
// creation params. Movements arrive settled, so everything parses as a paid
// transfer; the sign decides between receita and despesa.
package bankimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jpcarvalho/clubledger/internal/encoding"
	"github.com/jpcarvalho/clubledger/internal/money"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the statement to UTF-8, finds a known layout by its header
// row and extracts the movements below it. Footer and summary rows are
// skipped by failing the date parse.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	layout, cols, headerIdx := matchLayout(rows)
	if layout == nil {
		return nil, fmt.Errorf("statement layout not recognized: no known header row found")
	}

	var params []transaction.CreateParams

	for _, row := range rows[headerIdx+1:] {
		movement, ok := parseMovement(layout, cols, row)
		if !ok {
			continue
		}

		params = append(params, movement)
	}

	return params, nil
}

// matchLayout scans for the first row containing all required columns of a
// known layout.
func matchLayout(rows [][]string) (*Layout, map[string]int, int) {
	for rowIdx, row := range rows {
		cols := make(map[string]int, len(row))

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range layouts {
			if hasColumns(&layouts[i], cols) {
				return &layouts[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func hasColumns(l *Layout, cols map[string]int) bool {
	for _, name := range l.required() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseMovement(l *Layout, cols map[string]int, row []string) (transaction.CreateParams, bool) {
	dateStr := cell(row, cols[l.Date])
	if dateStr == "" {
		return transaction.CreateParams{}, false
	}

	date, err := time.Parse(l.DateForm, dateStr)
	if err != nil {
		return transaction.CreateParams{}, false
	}

	desc := cell(row, cols[l.Desc])
	if desc == "" {
		return transaction.CreateParams{}, false
	}

	amount, txType, ok := parseRowAmount(l, cols, row)
	if !ok {
		return transaction.CreateParams{}, false
	}

	return transaction.CreateParams{
		Description:    desc,
		RawDescription: desc,
		Amount:         amount,
		Type:           txType,
		Status:         transaction.StatusPaga,
		Date:           date,
		PaymentMethod:  transaction.MethodTransferencia,
	}, true
}

func parseRowAmount(l *Layout, cols map[string]int, row []string) (int64, transaction.Type, bool) {
	switch l.Amounts {
	case signedColumn:
		cents, err := money.ParseEuropean(cell(row, cols[l.Amount]))
		if err != nil || cents == 0 {
			return 0, "", false
		}

		if cents < 0 {
			return -cents, transaction.TypeDespesa, true
		}

		return cents, transaction.TypeReceita, true

	case debitCredit:
		if cents, err := money.ParseEuropean(cell(row, cols[l.Debit])); err == nil && cents != 0 {
			return abs(cents), transaction.TypeDespesa, true
		}

		if cents, err := money.ParseEuropean(cell(row, cols[l.Credit])); err == nil && cents != 0 {
			return abs(cents), transaction.TypeReceita, true
		}
	}

	return 0, "", false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
