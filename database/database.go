// Package database, SQLite bağlantısını ve migration sistemini yönetir.
//
// Neden SQLite?
// Tek binary, tek dosya: ayrı bir DB sunucusu kurmadan deploy edilir.
// modernc.org/sqlite saf Go'dur, CGO gerektirmez; cross-compile sorunsuzdur.
//
// Açılış akışı (New):
//  1. Veritabanı dosyasının dizini yoksa oluşturulur
//  2. Bağlantı açılır, PRAGMA'lar uygulanır:
//     - foreign_keys=ON: SQLite'ta FK kontrolü varsayılan olarak kapalıdır
//     - journal_mode=WAL: okuyucular yazarı beklemez
//     - busy_timeout: kilitli DB'de hemen hata yerine bir süre beklenir
//  3. Gömülü migration dosyaları isim sırasıyla çalıştırılır; uygulananlar
//     schema_migrations tablosuna yazılır, bir sonraki açılışta atlanır
//
// Transaction gereken service'ler WithTx kullanır (tx.go). Repository
// constructor'ları TxQuerier aldığı için aynı repo hem *sql.DB hem *sql.Tx
// ile çalışır.
package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver, CGO gerekmez
)

// recoverableErrors, yarım kalmış bir migration tekrar çalıştırıldığında
// güvenle atlanabilen hata pattern'ları.
var recoverableErrors = []string{
	"duplicate column name",
}

// DB, veritabanı bağlantısını saran struct. *sql.DB goroutine-safe connection pool'dur.
type DB struct {
	Conn *sql.DB
}

// New, SQLite bağlantısı açar ve uygulanmamış migration'ları çalıştırır.
func New(dbPath string, migrationsFS fs.FS) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// busy_timeout: WAL'da eşzamanlı writer'lar SQLITE_BUSY yerine bekler.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{Conn: conn}
	if err := db.runMigrations(migrationsFS); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("[database] connected and migrations applied")
	return db, nil
}

// Open, gömülü migration'larla New'i çağırır.
func Open(dbPath string) (*DB, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, err
	}
	return New(dbPath, migrations)
}

// Close, veritabanı bağlantısını kapatır.
func (db *DB) Close() error {
	return db.Conn.Close()
}

// runMigrations, migration dosyalarını isim sırasıyla (001_, 002_, ...) çalıştırır.
// schema_migrations tablosu uygulanmış dosyaları takip eder.
func (db *DB) runMigrations(migrationsFS fs.FS) error {
	if _, err := db.Conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	slices.Sort(sqlFiles)

	applied, err := db.appliedMigrations()
	if err != nil {
		return err
	}

	// Bootstrap: tracking tablosu boş ama şema zaten varsa (tracking öncesi kurulum),
	// tüm dosyalar uygulanmış sayılır.
	if len(applied) == 0 {
		var tableCount int
		if err := db.Conn.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='users'",
		).Scan(&tableCount); err != nil {
			return fmt.Errorf("failed to check existing tables: %w", err)
		}

		if tableCount > 0 {
			for _, file := range sqlFiles {
				if err := db.recordMigration(file); err != nil {
					return err
				}
			}
			log.Printf("[database] bootstrapped %d existing migrations", len(sqlFiles))
			return nil
		}
	}

	for _, file := range sqlFiles {
		if applied[file] {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		if err := db.execStatements(file, string(content)); err != nil {
			return err
		}
		if err := db.recordMigration(file); err != nil {
			return err
		}

		log.Printf("[database] migration applied: %s", file)
	}

	return nil
}

func (db *DB) appliedMigrations() (map[string]bool, error) {
	rows, err := db.Conn.Query("SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func (db *DB) recordMigration(file string) error {
	if _, err := db.Conn.Exec("INSERT INTO schema_migrations (filename) VALUES (?)", file); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", file, err)
	}
	return nil
}

// execStatements, migration'ı statement-by-statement çalıştırır;
// recoverableErrors'a uyan hatalar loglanıp atlanır.
func (db *DB) execStatements(filename, content string) error {
	for i, stmt := range splitStatements(content) {
		if _, err := db.Conn.Exec(stmt); err != nil {
			msg := err.Error()
			if slices.ContainsFunc(recoverableErrors, func(p string) bool { return strings.Contains(msg, p) }) {
				log.Printf("[database] %s: statement %d skipped (recoverable: %s)", filename, i+1, msg)
				continue
			}
			return fmt.Errorf("failed to execute migration %s (statement %d): %w", filename, i+1, err)
		}
	}
	return nil
}

// splitStatements, SQL metnini ';' ile böler. Tek tırnaklı literal içindeki
// ';' ve '' escape'i korunur; "--" satır yorumları atlanır.
func splitStatements(sql string) []string {
	var (
		statements []string
		current    strings.Builder
		inString   bool
	)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			statements = append(statements, s)
		}
		current.Reset()
	}

	for i := 0; i < len(sql); i++ {
		ch := sql[i]

		if !inString && ch == '-' && i+1 < len(sql) && sql[i+1] == '-' {
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			current.WriteByte('\n')
			continue
		}

		if ch == '\'' {
			if inString && i+1 < len(sql) && sql[i+1] == '\'' {
				current.WriteString("''")
				i++
				continue
			}
			inString = !inString
		}

		if ch == ';' && !inString {
			flush()
			continue
		}
		current.WriteByte(ch)
	}
	flush()

	return statements
}
