package migrations

import (
	"context"
	"testing"

	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"
)

func TestBringUpToDate(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	defer db.Close()

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.NotZero(t, group.ID)

	group, err = BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, group.ID)

	var count int
	err = db.NewSelect().
		TableExpr("sqlite_master").
		ColumnExpr("COUNT(*)").
		Where("type = 'table' AND name IN ('books', 'book_instances')").
		Scan(ctx, &count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = migrate.NewMigrator(db, Migrations).Rollback(ctx)
	require.NoError(t, err)

	err = db.NewSelect().
		TableExpr("sqlite_master").
		ColumnExpr("COUNT(*)").
		Where("type = 'table' AND name IN ('books', 'book_instances')").
		Scan(ctx, &count)
	require.NoError(t, err)
	assert.Zero(t, count)
}
