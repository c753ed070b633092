package testutil

import (
	"context"
	"testing"

	"github.com/lepinkainen/watchlog/internal/sheet"
)

// NewWorkbook opens a SQLite workbook at name inside env. It is closed when
// the test completes.
func NewWorkbook(t *testing.T, env *TestEnv, name string) *sheet.SQLiteOpener {
	t.Helper()

	opener, err := sheet.NewSQLiteOpener(env.Path(name))
	if err != nil {
		t.Fatalf("failed to open workbook %q: %v", name, err)
	}
	t.Cleanup(func() { _ = opener.Close() })

	return opener
}

// SeedDocument opens document and appends rows to it in order.
func SeedDocument(t *testing.T, opener sheet.Opener, document string, rows ...[]string) sheet.Sheet {
	t.Helper()

	ctx := context.Background()
	s, err := opener.Open(ctx, document)
	if err != nil {
		t.Fatalf("failed to open document %q: %v", document, err)
	}
	for i, row := range rows {
		if err := s.AppendRow(ctx, row); err != nil {
			t.Fatalf("failed to seed row %d of %q: %v", i+1, document, err)
		}
	}
	return s
}
