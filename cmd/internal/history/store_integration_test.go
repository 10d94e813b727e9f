package history_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
	"github.com/zhukovvlad/docfill-go/cmd/internal/testutil"
)

/*
INTEGRATION TESTS FOR HISTORY STORE

Каждый тест работает с настоящим PostgreSQL в testcontainers: проверяем
реальные SQL запросы, ограничения схемы и агрегацию, а не их имитацию.
Запускаются только без -short.
*/

func setupStore(t *testing.T) (*history.SQLStore, *sql.DB) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, container, err := testutil.SetupTestDatabase(t)
	require.NoError(t, err)
	t.Cleanup(func() {
		testutil.TeardownTestDatabase(t, db, container)
	})

	require.NoError(t, testutil.RunMigrations(t, db))
	return history.NewStore(db), db
}

func TestAPIClientLifecycle(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	created, err := store.CreateAPIClient(ctx, history.CreateAPIClientParams{
		ClientID:   "report-service",
		SecretHash: testutil.TestSecretHash,
		Name:       "Report Service",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
	testutil.AssertWithinDuration(t, time.Now(), created.CreatedAt, 5*time.Second)

	t.Run("получение по client_id", func(t *testing.T) {
		got, err := store.GetAPIClientByClientID(ctx, "report-service")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, testutil.TestSecretHash, got.SecretHash)
	})

	t.Run("повторная регистрация того же client_id отклоняется", func(t *testing.T) {
		_, err := store.CreateAPIClient(ctx, history.CreateAPIClientParams{
			ClientID:   "report-service",
			SecretHash: testutil.TestSecretHash,
			Name:       "Duplicate",
		})
		assert.Error(t, err)
	})

	t.Run("деактивация", func(t *testing.T) {
		require.NoError(t, store.DeactivateAPIClient(ctx, "report-service"))
		got, err := store.GetAPIClientByClientID(ctx, "report-service")
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("деактивация несуществующего клиента", func(t *testing.T) {
		err := store.DeactivateAPIClient(ctx, "ghost")
		assert.ErrorIs(t, err, history.ErrClientNotFound)
	})

	t.Run("несуществующий client_id", func(t *testing.T) {
		_, err := store.GetAPIClientByClientID(ctx, "ghost")
		assert.ErrorIs(t, err, history.ErrClientNotFound)
	})
}

func TestFillHistory(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	newRecord := func(name string, filled, skipped int32) history.FillRecord {
		r, err := store.CreateFillRecord(ctx, history.CreateFillRecordParams{
			ClientID:     "report-service",
			TemplateName: name,
			TemplateHash: "deadbeef",
			TotalFilled:  filled,
			SkippedCount: skipped,
			DurationMs:   15,
			Stats: pqtype.NullRawMessage{
				RawMessage: []byte(`{"total_filled":1}`),
				Valid:      true,
			},
		})
		require.NoError(t, err)
		return r
	}

	t.Run("вставка и чтение записи со статистикой", func(t *testing.T) {
		created := newRecord("bid.docx", 12, 2)
		got, err := store.GetFillRecord(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "bid.docx", got.TemplateName)
		assert.Equal(t, int32(12), got.TotalFilled)
		assert.Equal(t, int64(15), got.DurationMs)
		require.True(t, got.Stats.Valid)
		assert.JSONEq(t, `{"total_filled":1}`, string(got.Stats.RawMessage))
	})

	t.Run("чтение несуществующей записи", func(t *testing.T) {
		_, err := store.GetFillRecord(ctx, 999999)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("пагинация в порядке убывания времени", func(t *testing.T) {
		require.NoError(t, testutil.CleanupTables(t, db))
		for i := 0; i < 5; i++ {
			newRecord("batch.docx", int32(i), 0)
		}

		page, err := store.ListFillRecords(ctx, history.ListFillRecordsParams{Limit: 3, Offset: 0})
		require.NoError(t, err)
		assert.Len(t, page, 3)

		rest, err := store.ListFillRecords(ctx, history.ListFillRecordsParams{Limit: 3, Offset: 3})
		require.NoError(t, err)
		assert.Len(t, rest, 2)
	})

	t.Run("сводная статистика", func(t *testing.T) {
		require.NoError(t, testutil.CleanupTables(t, db))
		newRecord("a.docx", 10, 1)
		newRecord("b.docx", 5, 2)

		stats, err := store.GetAggregateStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalDocuments)
		assert.Equal(t, int64(15), stats.TotalFilled)
		assert.Equal(t, int64(3), stats.TotalSkipped)
		assert.Equal(t, int64(2), stats.DocumentsLast24h)
	})
}
