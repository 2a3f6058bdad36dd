package identity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "identity.db")
	store, err := NewSQLStore(DriverSQLite, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLStore_TaxpayerRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	_, hit, err := store.GetTaxpayer(ctx, "7707083893")
	require.NoError(t, err)
	assert.False(t, hit)

	rec := Record{
		TaxpayerID:  "7707083893",
		CompanyName: "ПАО СБЕРБАНК",
		Phone:       "+7 495 500-55-50",
		Email:       "sberbank@sberbank.ru",
		Country:     "russia",
	}
	require.NoError(t, store.PutTaxpayer(ctx, rec))

	got, hit, err := store.GetTaxpayer(ctx, "7707083893")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, rec, *got)

	// Upsert replaces.
	rec.CompanyName = "СБЕРБАНК РОССИИ"
	require.NoError(t, store.PutTaxpayer(ctx, rec))
	got, _, err = store.GetTaxpayer(ctx, "7707083893")
	require.NoError(t, err)
	assert.Equal(t, "СБЕРБАНК РОССИИ", got.CompanyName)
}

func TestSQLStore_SearchNamespaceIsSeparate(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutSearch(ctx, "ООО РОМАШКА", Record{TaxpayerID: "7707083893", Country: "russia"}))
	// Negative outcome: empty record under the query key.
	require.NoError(t, store.PutSearch(ctx, "ООО НЕИЗВЕСТНО", Record{}))

	got, hit, err := store.GetSearch(ctx, "ООО РОМАШКА")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "7707083893", got.TaxpayerID)

	neg, hit, err := store.GetSearch(ctx, "ООО НЕИЗВЕСТНО")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Empty(t, neg.TaxpayerID)

	_, hit, err = store.GetTaxpayer(ctx, "ООО РОМАШКА")
	require.NoError(t, err)
	assert.False(t, hit, "search rows must not leak into the taxpayer table")
}

func TestNewSQLStore_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLStore("mysql", "dsn", nil)
	assert.Error(t, err)
}

func TestSQLStore_PostgresUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS cache_taxpayer_id").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS search_engine").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ON CONFLICT").
		WithArgs("050000000009", "050000000009", "ТОО КАЗТЕСТ", "", "", "kazakhstan").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store, err := NewSQLStoreFromDB(db, DriverPostgres, nil)
	require.NoError(t, err)

	err = store.PutTaxpayer(context.Background(), Record{
		TaxpayerID:  "050000000009",
		CompanyName: "ТОО КАЗТЕСТ",
		Country:     "kazakhstan",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ReadErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS cache_taxpayer_id").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS search_engine").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT taxpayer_id").WillReturnError(assert.AnError)

	store, err := NewSQLStoreFromDB(db, DriverPostgres, nil)
	require.NoError(t, err)

	_, _, err = store.GetTaxpayer(context.Background(), "7707083893")
	assert.Error(t, err)
}
