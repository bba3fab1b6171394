package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fueldepot/internal/config"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

func openTemp(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(config.StoreConfig{Backend: config.BackendSQLite, SQLitePath: path}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadEmpty(t *testing.T) {
	store := openTemp(t, filepath.Join(t.TempDir(), "depot.db"))

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.Empty(t, store.Revision())
}

func TestSaveAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "depot.db")
	store := openTemp(t, path)

	doc := workbook.New([]string{"RGS-50 #1"})
	doc.Section(workbook.SheetReceipts).AppendRow(workbook.StyleNormal,
		workbook.Text("2024-03-05"), workbook.Text("RGS-50 #1"), workbook.Int(1000), workbook.Int(1500), workbook.Number(500), workbook.Number(370))
	require.NoError(t, store.Save(ctx, doc))
	first := store.Revision()

	require.NoError(t, store.Save(ctx, doc))
	assert.NotEqual(t, first, store.Revision())

	n, err := store.Revisions(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	reopened := openTemp(t, path)
	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, store.Revision(), reopened.Revision())
	assert.Equal(t, 370.0, loaded.Section(workbook.SheetReceipts).At(workbook.ColReceiptKg, workbook.FirstDataRow).FloatOrZero())
}

func TestLoadMalformed(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t, filepath.Join(t.TempDir(), "depot.db"))

	require.NoError(t, store.db.Create(&documentRecord{ID: documentID, Revision: "r1", Body: []byte("garbage")}).Error)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, workbook.ErrMalformedDocument)
}

func TestOpenUnsupportedBackend(t *testing.T) {
	_, err := Open(config.StoreConfig{Backend: config.BackendSheets}, nil)
	assert.Error(t, err)
}
