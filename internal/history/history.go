// Package history stores REPL input history in a sqlite database and
// provides interop with flat, readline-style history files.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"replkit/internal/core"
)

// Manager owns the history database. Each Manager belongs to one REPL
// session, identified by a fresh session id.
type Manager struct {
	db        *gorm.DB
	sessionID string
}

// Entry is one evaluated input.
type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	SessionID  string `gorm:"index"`
	Input      string
	DurationMs sql.NullInt64
	Failed     sql.NullBool
}

const (
	historySchemaVersion = 1
)

// NewManager opens (creating if necessary) the history database at
// dbFilePath.
func NewManager(dbFilePath string) (*Manager, error) {
	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("checking history db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if needsMigration(dbFileExists, db) {
		if err := db.AutoMigrate(&Entry{}); err != nil {
			return nil, fmt.Errorf("migrating history schema: %w", err)
		}
		if err := writeSchemaVersion(historySchemaVersion); err != nil {
			return nil, fmt.Errorf("writing history schema version: %w", err)
		}
	}

	return &Manager{
		db:        db,
		sessionID: uuid.NewString(),
	}, nil
}

func needsMigration(dbFileExists bool, db *gorm.DB) bool {
	if !dbFileExists {
		return true
	}

	versionMatches, err := schemaVersionMatches()
	if err != nil || !versionMatches {
		return true
	}

	// If the version marker is present but the table is missing (corruption
	// or manual deletion), re-run migrations to restore the schema.
	return !db.Migrator().HasTable(&Entry{})
}

func writeSchemaVersion(version int) error {
	return os.WriteFile(schemaVersionPath(), []byte(strconv.Itoa(version)), 0644)
}

func schemaVersionMatches() (bool, error) {
	data, err := os.ReadFile(schemaVersionPath())
	if err != nil {
		return false, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, err
	}
	if version != historySchemaVersion {
		return false, fmt.Errorf("history schema version mismatch: got %d, want %d", version, historySchemaVersion)
	}
	return true, nil
}

func schemaVersionPath() string {
	return filepath.Join(core.DataDir(), "history_schema_version")
}

// SessionID returns the id assigned to this manager's session.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// StartInput records an input at the moment it is submitted.
func (m *Manager) StartInput(input string) (*Entry, error) {
	entry := Entry{
		SessionID: m.sessionID,
		Input:     input,
	}
	if result := m.db.Create(&entry); result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// FinishInput records the outcome of an evaluated input.
func (m *Manager) FinishInput(entry *Entry, elapsed time.Duration, failed bool) (*Entry, error) {
	entry.DurationMs = sql.NullInt64{Int64: elapsed.Milliseconds(), Valid: true}
	entry.Failed = sql.NullBool{Bool: failed, Valid: true}
	if result := m.db.Save(entry); result.Error != nil {
		return nil, result.Error
	}
	return entry, nil
}

// RecentEntries returns up to limit entries in chronological order
// (oldest first).
func (m *Manager) RecentEntries(limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	slices.Reverse(entries)
	return entries, nil
}

// RecentByPrefix returns up to limit entries whose input starts with prefix,
// most recent first.
func (m *Manager) RecentByPrefix(prefix string, limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Where("input LIKE ?", prefix+"%").
		Order("id desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// Search returns up to limit entries whose input contains query, most
// recent first.
func (m *Manager) Search(query string, limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Where("input LIKE ?", "%"+query+"%").
		Order("id desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// fuzzyCandidatePool bounds how much history a reverse search considers.
const fuzzyCandidatePool = 500

// FuzzySearch ranks recent distinct inputs against query. An empty query
// returns the most recent inputs unranked. Used by reverse history search.
func (m *Manager) FuzzySearch(query string, limit int) ([]string, error) {
	lines, err := m.Lines(fuzzyCandidatePool)
	if err != nil {
		return nil, err
	}
	if query == "" {
		if len(lines) > limit {
			lines = lines[:limit]
		}
		return lines, nil
	}

	matches := fuzzy.Find(query, lines)
	results := make([]string, 0, len(matches))
	for _, match := range matches {
		results = append(results, match.Str)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Lines returns up to limit distinct recent inputs, most recent first.
// This feeds Up/Down history navigation in the line editor.
func (m *Manager) Lines(limit int) ([]string, error) {
	entries, err := m.RecentEntries(limit)
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	lines := lo.Map(entries, func(e Entry, _ int) string { return e.Input })
	return lo.Uniq(lines), nil
}

// Delete removes the entry with the given id.
func (m *Manager) Delete(id uint) error {
	result := m.db.Delete(&Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no history entry found with id %d", id)
	}
	return nil
}

// Reset deletes all history entries.
func (m *Manager) Reset() error {
	result := m.db.Exec("DELETE FROM entries")
	return result.Error
}
