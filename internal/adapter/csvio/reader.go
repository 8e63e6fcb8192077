package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/txengine/internal/domain"
)

// ErrMissingHeader is returned when the input has no header row or the
// header lacks a required column.
var ErrMissingHeader = errors.New("input header is missing or incomplete")

// Input column names.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

// Reader implements usecase.EventSource over a CSV stream with a
// type,client,tx,amount header. Columns are located by name; amount may be
// absent from the header.
type Reader struct {
	csv    *csv.Reader
	typ    int
	client int
	tx     int
	amount int
	width  int
}

// NewReader reads the header row of r and returns a Reader positioned at the
// first event row.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: input is empty", ErrMissingHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	reader := &Reader{csv: cr, typ: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch name {
		case ColumnType:
			reader.typ = i
		case ColumnClient:
			reader.client = i
		case ColumnTx:
			reader.tx = i
		case ColumnAmount:
			reader.amount = i
		}
	}

	for name, idx := range map[string]int{ColumnType: reader.typ, ColumnClient: reader.client, ColumnTx: reader.tx} {
		if idx < 0 {
			return nil, fmt.Errorf("%w: no %q column", ErrMissingHeader, name)
		}
		if idx >= reader.width {
			reader.width = idx + 1
		}
	}

	return reader, nil
}

// Next returns the next event. Rows that do not parse are reported with
// domain.ErrMalformedRecord; io.EOF marks the end of input.
func (r *Reader) Next(ctx context.Context) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := r.csv.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, parseErr)
		}
		return nil, err
	}

	line, _ := r.csv.FieldPos(0)

	event, err := r.parse(record)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	return event, nil
}

func (r *Reader) parse(record []string) (*domain.Event, error) {
	if len(record) < r.width {
		return nil, fmt.Errorf("%w: expected at least %d fields, got %d", domain.ErrMalformedRecord, r.width, len(record))
	}

	typ, err := domain.ParseEventType(record[r.typ])
	if err != nil {
		return nil, err
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[r.client]), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: client %q is not a 16-bit unsigned integer", domain.ErrMalformedRecord, record[r.client])
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(record[r.tx]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %q is not a 32-bit unsigned integer", domain.ErrMalformedRecord, record[r.tx])
	}

	event := &domain.Event{
		Type:   typ,
		Client: domain.ClientID(client),
		Tx:     domain.TransactionID(tx),
	}
	if r.amount >= 0 && r.amount < len(record) {
		event.Amount = strings.TrimSpace(record[r.amount])
	}

	return event, nil
}
