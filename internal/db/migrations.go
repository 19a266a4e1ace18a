package db

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"regexp"
	"slices"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/sitelog/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+("?[\w]+"?)\s+ADD\s+COLUMN\s+("?[\w]+"?)`)
)

var errEmptyMigration = errors.New("migration has no statements")

type schemaMigration struct {
	Version int
	Name    string
	Body    string
}

// MigrationStatus describes one embedded migration. AppliedAt is empty while
// the migration is pending.
type MigrationStatus struct {
	Version   int
	Name      string
	AppliedAt string
}

type appliedMigrationRow struct {
	Version   string    `gorm:"column:version"`
	AppliedAt string `gorm:"column:applied_at"`
}

type migrator struct {
	database *gorm.DB
	source   fs.FS
}

func newMigrator(database *gorm.DB) *migrator {
	return &migrator{database: database, source: embeddedmigrations.SQL}
}

func (runner *migrator) run() error {
	if err := runner.ensureLedger(); err != nil {
		return err
	}

	pending, err := runner.pending()
	if err != nil {
		return err
	}
	for _, migration := range pending {
		if err := runner.apply(migration); err != nil {
			return err
		}
		log.Printf("db: applied migration %03d_%s", migration.Version, migration.Name)
	}
	return nil
}

func (runner *migrator) ensureLedger() error {
	err := runner.database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (runner *migrator) load() ([]schemaMigration, error) {
	entries, err := fs.ReadDir(runner.source, ".")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(entries))
	byVersion := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parts := migrationNamePattern.FindStringSubmatch(entry.Name())
		if parts == nil {
			continue
		}

		version, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", entry.Name(), err)
		}
		if previous, ok := byVersion[version]; ok {
			return nil, fmt.Errorf("migration version %d used by %s and %s", version, previous, entry.Name())
		}
		byVersion[version] = entry.Name()

		body, err := fs.ReadFile(runner.source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, schemaMigration{Version: version, Name: parts[2], Body: string(body)})
	}

	slices.SortFunc(migrations, func(left, right schemaMigration) int {
		return left.Version - right.Version
	})
	return migrations, nil
}

func (runner *migrator) applied() (map[int]string, error) {
	rows := make([]appliedMigrationRow, 0)
	if err := runner.database.Raw(`SELECT version, applied_at FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}

	applied := make(map[int]string, len(rows))
	for _, row := range rows {
		version, err := strconv.Atoi(strings.TrimSpace(row.Version))
		if err != nil {
			return nil, fmt.Errorf("schema_migrations has invalid version %q", row.Version)
		}
		applied[version] = row.AppliedAt
	}
	return applied, nil
}

func (runner *migrator) pending() ([]schemaMigration, error) {
	migrations, err := runner.load()
	if err != nil {
		return nil, err
	}
	applied, err := runner.applied()
	if err != nil {
		return nil, err
	}

	pending := make([]schemaMigration, 0, len(migrations))
	for _, migration := range migrations {
		if _, done := applied[migration.Version]; !done {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

func (runner *migrator) apply(migration schemaMigration) error {
	statements := sqlStatements(migration.Body)
	if len(statements) == 0 {
		return fmt.Errorf("migration %03d_%s: %w", migration.Version, migration.Name, errEmptyMigration)
	}

	return runner.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			redundant, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("migration %03d_%s: %w", migration.Version, migration.Name, err)
			}
			if redundant {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %03d_%s: %q: %w", migration.Version, migration.Name, statement, err)
			}
		}

		return tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			fmt.Sprintf("%03d", migration.Version),
			migration.Name,
		).Error
	})
}

// MigrationStatuses lists every embedded migration in version order.
func MigrationStatuses(database *gorm.DB) ([]MigrationStatus, error) {
	runner := newMigrator(database)
	if err := runner.ensureLedger(); err != nil {
		return nil, err
	}
	migrations, err := runner.load()
	if err != nil {
		return nil, err
	}
	applied, err := runner.applied()
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, migration := range migrations {
		status := MigrationStatus{Version: migration.Version, Name: migration.Name}
		if appliedAt, ok := applied[migration.Version]; ok {
			status.AppliedAt = appliedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// sqlStatements splits a migration body on semicolons after dropping
// full-line "--" comments.
func sqlStatements(body string) []string {
	lines := strings.Split(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	statements := make([]string, 0)
	for _, part := range strings.Split(strings.Join(kept, "\n"), ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded lets ADD COLUMN statements run against databases that
// were patched by hand before the ledger existed.
func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	parts := addColumnPattern.FindStringSubmatch(statement)
	if parts == nil {
		return false, nil
	}
	table := strings.Trim(parts[1], `"`)
	column := strings.Trim(parts[2], `"`)

	columns := make([]struct {
		Name string `gorm:"column:name"`
	}, 0)
	if err := database.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, table)).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(existing.Name, column) {
			return true, nil
		}
	}
	return false, nil
}
