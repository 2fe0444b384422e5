package storage_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/storage"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644))
}

func TestRunMigrations_AppliesFilesInLexicographicOrder(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_indexes.sql", "CREATE INDEX two;")
	writeMigration(t, dir, "001_schema.sql", "CREATE TABLE one;")
	writeMigration(t, dir, "README.md", "not a migration")

	var executed []string
	var begun int
	beginner := &mockTxBeginner{beginFn: func(_ context.Context) (pgx.Tx, error) {
		begun++
		return &mockTx{execFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			executed = append(executed, sql)
			return pgconn.CommandTag{}, nil
		}}, nil
	}}

	err := storage.RunMigrations(context.Background(), beginner, dir)
	require.NoError(t, err)

	require.Equal(t, []string{"CREATE TABLE one;", "CREATE INDEX two;"}, executed)
	assert.Equal(t, 2, begun, "each migration runs in its own transaction")
}

func TestRunMigrations_MissingDir(t *testing.T) {
	err := storage.RunMigrations(context.Background(), &mockTxBeginner{}, "/does/not/exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading migrations dir")
}

func TestRunMigrations_FailingStatementStopsAndRollsBack(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_bad.sql", "BROKEN SQL;")
	writeMigration(t, dir, "002_never_runs.sql", "CREATE TABLE never;")

	var txs []*mockTx
	beginner := &mockTxBeginner{beginFn: func(_ context.Context) (pgx.Tx, error) {
		tx := &mockTx{execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("syntax error")
		}}
		txs = append(txs, tx)
		return tx, nil
	}}

	err := storage.RunMigrations(context.Background(), beginner, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_bad.sql")

	require.Len(t, txs, 1, "the second migration must not start")
	assert.True(t, txs[0].rolledBack)
	assert.False(t, txs[0].committed)
}
