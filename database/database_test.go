package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppliesEmbeddedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigma.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "instructors", "categories", "courses", "enrollments", "certificates", "vouchers", "bank_accounts", "verification_tokens"} {
		var n int
		require.NoError(t, db.Conn.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&n))
		assert.Equal(t, 1, n, table)
	}

	var applied int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestMigrationsRunOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigma.db")
	migrations := fstest.MapFS{
		"001_a.sql": {Data: []byte("CREATE TABLE users (id TEXT);")},
		"002_b.sql": {Data: []byte("ALTER TABLE users ADD COLUMN name TEXT; -- yorum ; burada\nINSERT INTO users (id, name) VALUES ('1', 'a;b');")},
	}

	db, err := New(path, migrations)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path, migrations)
	require.NoError(t, err)
	defer db.Close()

	var name string
	require.NoError(t, db.Conn.QueryRow("SELECT name FROM users WHERE id = '1'").Scan(&name))
	assert.Equal(t, "a;b", name)

	var rows int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (x TEXT);\n-- not; a statement\nINSERT INTO a VALUES ('it''s; fine');  ")
	assert.Equal(t, []string{
		"CREATE TABLE a (x TEXT)",
		"INSERT INTO a VALUES ('it''s; fine')",
	}, stmts)
}

func TestWithTx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.db")
	db, err := New(path, fstest.MapFS{
		"001.sql": {Data: []byte("CREATE TABLE users (id TEXT PRIMARY KEY);")},
	})
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	err = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO users (id) VALUES ('rolled-back')"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		var q TxQuerier = tx
		_, err := q.ExecContext(ctx, "INSERT INTO users (id) VALUES ('kept')")
		return err
	})
	require.NoError(t, err)

	var ids []string
	rows, err := db.Conn.Query("SELECT id FROM users")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"kept"}, ids)
}
