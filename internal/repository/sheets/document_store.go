// Package sheets mirrors the depot document into a Google Sheets
// spreadsheet, one tab per section.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/fueldepot/internal/config"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

// metaTab holds one line per section with its row and column high-water
// marks, so cleared trailing rows stay reserved across reloads.
const metaTab = "_depot_meta"

// DocumentStore keeps the depot document in a spreadsheet. Cell styles are
// not mirrored.
type DocumentStore struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewDocumentStore builds a Google Sheets backed document store.
func NewDocumentStore(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*DocumentStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &DocumentStore{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// Load reads every depot tab back into a document. A spreadsheet without
// any depot tab yields nil.
func (r *DocumentStore) Load(ctx context.Context) (*workbook.Document, error) {
	existing, err := r.tabs(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, name := range workbook.SectionNames() {
		if existing[name] {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	ranges := quoteAll(names)
	if existing[metaTab] {
		ranges = append(ranges, quote(metaTab))
	}

	resp, err := r.service.Spreadsheets.Values.BatchGet(r.spreadsheetID).
		Ranges(ranges...).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read depot tabs: %w", err)
	}
	if len(resp.ValueRanges) != len(ranges) {
		return nil, fmt.Errorf("read depot tabs: got %d ranges for %d tabs: %w", len(resp.ValueRanges), len(ranges), workbook.ErrMalformedDocument)
	}

	doc := workbook.NewDocument()
	for i, name := range names {
		fromValues(doc.Section(name), resp.ValueRanges[i].Values)
	}
	if len(ranges) > len(names) {
		applyMarks(doc, resp.ValueRanges[len(names)].Values)
	}
	r.logger.Debug("depot document read from spreadsheet", zap.Int("tabs", len(names)))
	return doc, nil
}

// Save rewrites every section of the document into its tab.
func (r *DocumentStore) Save(ctx context.Context, doc *workbook.Document) error {
	sections := doc.Sections()
	names := make([]string, 0, len(sections))
	data := make([]*sheetsapi.ValueRange, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Name())
		data = append(data, &sheetsapi.ValueRange{
			Range:  quote(s.Name()) + "!A1",
			Values: toValues(s),
		})
	}

	names = append(names, metaTab)
	data = append(data, &sheetsapi.ValueRange{
		Range:  quote(metaTab) + "!A1",
		Values: markValues(sections),
	})

	if err := r.ensureTabs(ctx, names); err != nil {
		return err
	}

	clearReq := &sheetsapi.BatchClearValuesRequest{Ranges: quoteAll(names)}
	if _, err := r.service.Spreadsheets.Values.BatchClear(r.spreadsheetID, clearReq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear depot tabs: %w", err)
	}

	update := &sheetsapi.BatchUpdateValuesRequest{ValueInputOption: "RAW", Data: data}
	if _, err := r.service.Spreadsheets.Values.BatchUpdate(r.spreadsheetID, update).Context(ctx).Do(); err != nil {
		return fmt.Errorf("write depot tabs: %w", err)
	}

	r.logger.Debug("depot document written to spreadsheet", zap.Int("tabs", len(names)))
	return nil
}

func (r *DocumentStore) tabs(ctx context.Context) (map[string]bool, error) {
	resp, err := r.service.Spreadsheets.Get(r.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list spreadsheet tabs: %w", err)
	}
	out := make(map[string]bool, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			out[sh.Properties.Title] = true
		}
	}
	return out, nil
}

func (r *DocumentStore) ensureTabs(ctx context.Context, names []string) error {
	existing, err := r.tabs(ctx)
	if err != nil {
		return err
	}
	requests := addTabRequests(existing, names)
	if len(requests) == 0 {
		return nil
	}
	batch := &sheetsapi.BatchUpdateSpreadsheetRequest{Requests: requests}
	if _, err := r.service.Spreadsheets.BatchUpdate(r.spreadsheetID, batch).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add spreadsheet tabs: %w", err)
	}
	r.logger.Info("spreadsheet tabs added", zap.Int("count", len(requests)))
	return nil
}

func addTabRequests(existing map[string]bool, names []string) []*sheetsapi.Request {
	var requests []*sheetsapi.Request
	for _, name := range names {
		if existing[name] {
			continue
		}
		requests = append(requests, &sheetsapi.Request{
			AddSheet: &sheetsapi.AddSheetRequest{Properties: &sheetsapi.SheetProperties{Title: name}},
		})
	}
	return requests
}

// toValues lays a section out as a dense grid starting at A1.
func toValues(s *workbook.Section) [][]interface{} {
	values := make([][]interface{}, s.RowCount())
	for i := range values {
		row := s.Row(i + 1)
		last := -1
		for c, cell := range row.Cells {
			if !cell.IsEmpty() {
				last = c
			}
		}
		line := make([]interface{}, last+1)
		for c := 0; c <= last; c++ {
			line[c] = row.Cells[c].Value()
		}
		values[i] = line
	}
	return values
}

func fromValues(s *workbook.Section, values [][]interface{}) {
	for r, line := range values {
		for c, v := range line {
			if str, ok := v.(string); ok && str == "" {
				continue
			}
			s.SetAt(c+1, r+1, workbook.FromValue(v), workbook.StyleNone)
		}
	}
}

// markValues lists the high-water marks of every section under a header line.
func markValues(sections []*workbook.Section) [][]interface{} {
	values := [][]interface{}{{"section", "rows", "cols"}}
	for _, s := range sections {
		values = append(values, []interface{}{s.Name(), s.RowCount(), s.ColCount()})
	}
	return values
}

// applyMarks restores the marks written by markValues. Lines for sections
// the document does not hold are ignored.
func applyMarks(doc *workbook.Document, values [][]interface{}) {
	for i, line := range values {
		if i == 0 || len(line) < 3 {
			continue
		}
		s, ok := doc.Lookup(workbook.FromValue(line[0]).String())
		if !ok {
			continue
		}
		s.Reserve(int(workbook.FromValue(line[1]).FloatOrZero()), int(workbook.FromValue(line[2]).FloatOrZero()))
	}
}

func quote(name string) string { return "'" + name + "'" }

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = quote(n)
	}
	return out
}
