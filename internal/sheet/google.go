package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	valueInputOption = "USER_ENTERED"
	spreadsheetMIME  = "application/vnd.google-apps.spreadsheet"
)

// GoogleOpener opens Google Sheets documents by name through the Drive API.
type GoogleOpener struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewGoogleOpenerFromFile authenticates with a service account JSON key.
func NewGoogleOpenerFromFile(ctx context.Context, credentialsFile string) (*GoogleOpener, error) {
	return NewGoogleOpener(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveReadonlyScope),
	)
}

// NewGoogleOpener creates the Sheets and Drive services with the given options.
func NewGoogleOpener(ctx context.Context, opts ...option.ClientOption) (*GoogleOpener, error) {
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &GoogleOpener{sheets: sheetsSvc, drive: driveSvc}, nil
}

// Open finds the spreadsheet called name and returns its first worksheet.
func (o *GoogleOpener) Open(ctx context.Context, name string) (Sheet, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMIME)

	files, err := o.drive.Files.List().Q(query).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to look up spreadsheet %q: %w", name, err)
	}
	if len(files.Files) == 0 {
		return nil, fmt.Errorf("spreadsheet %q not found (is it shared with the service account?)", name)
	}
	id := files.Files[0].Id

	doc, err := o.sheets.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet %q: %w", name, err)
	}
	if len(doc.Sheets) == 0 || doc.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("spreadsheet %q has no worksheets", name)
	}

	title := doc.Sheets[0].Properties.Title
	slog.Debug("Opened spreadsheet", "name", name, "id", id, "worksheet", title)

	return &googleSheet{values: o.sheets.Spreadsheets.Values, id: id, title: title}, nil
}

type googleSheet struct {
	values *sheets.SpreadsheetsValuesService
	id     string
	title  string
}

// qualify prefixes an A1 range with the quoted worksheet title.
func (s *googleSheet) qualify(a1Range string) string {
	quoted := "'" + strings.ReplaceAll(s.title, "'", "''") + "'"
	if a1Range == "" {
		return quoted
	}
	return quoted + "!" + a1Range
}

func (s *googleSheet) Get(ctx context.Context, a1Range string) ([][]string, error) {
	resp, err := s.values.Get(s.id, s.qualify(a1Range)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", a1Range, err)
	}
	return toStrings(resp.Values), nil
}

func (s *googleSheet) Find(ctx context.Context, text string) (Cell, error) {
	resp, err := s.values.Get(s.id, s.qualify("")).Context(ctx).Do()
	if err != nil {
		return Cell{}, fmt.Errorf("failed to read worksheet: %w", err)
	}
	for r, row := range toStrings(resp.Values) {
		for c, value := range row {
			if value == text {
				return Cell{Row: r + 1, Col: c + 1}, nil
			}
		}
	}
	return Cell{}, ErrCellNotFound
}

func (s *googleSheet) RowValues(ctx context.Context, row int) ([]string, error) {
	rng := fmt.Sprintf("%d:%d", row, row)
	resp, err := s.values.Get(s.id, s.qualify(rng)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read row %d: %w", row, err)
	}
	values := toStrings(resp.Values)
	if len(values) == 0 {
		return nil, nil
	}
	return trimTrailingEmpty(values[0]), nil
}

func (s *googleSheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := s.values.Update(s.id, s.qualify(A1(row, col)), vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", A1(row, col), err)
	}
	return nil
}

func (s *googleSheet) AppendRow(ctx context.Context, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.values.Append(s.id, s.qualify("A1"), vr).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = fmt.Sprint(v)
		}
	}
	return out
}
