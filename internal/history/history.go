package history

import (
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// HistoryManager stores every value committed through an autocomplete input.
type HistoryManager struct {
	db *gorm.DB
}

type HistoryEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Value   string `gorm:"index"`
	Session string `gorm:"index"`
}

func NewHistoryManager(dbFilePath string) (*HistoryManager, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database")
		return nil, err
	}

	if err := db.AutoMigrate(&HistoryEntry{}); err != nil {
		return nil, err
	}

	return &HistoryManager{
		db: db,
	}, nil
}

// Close closes the database connection. This should be called when the
// HistoryManager is no longer needed, especially in tests to allow cleanup
// of temporary database files on Windows.
func (historyManager *HistoryManager) Close() error {
	sqlDB, err := historyManager.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (historyManager *HistoryManager) RecordCommit(value string, session string) (*HistoryEntry, error) {
	entry := HistoryEntry{
		Value:   value,
		Session: session,
	}

	result := historyManager.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// GetRecentEntries returns up to limit entries, newest first. An empty
// session matches every session.
func (historyManager *HistoryManager) GetRecentEntries(session string, limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	var db = historyManager.db
	if session != "" {
		db = db.Where("session = ?", session)
	}
	result := db.Order("created_at desc").Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// GetRecentValues returns the distinct committed values, most recent first.
func (historyManager *HistoryManager) GetRecentValues(limit int) ([]string, error) {
	var entries []HistoryEntry
	result := historyManager.db.Order("created_at desc").Order("id desc").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	values := lo.Uniq(lo.Map(entries, func(e HistoryEntry, _ int) string {
		return e.Value
	}))
	if limit > 0 && len(values) > limit {
		values = values[:limit]
	}
	return values, nil
}

func (historyManager *HistoryManager) DeleteEntry(id uint) error {
	result := historyManager.db.Delete(&HistoryEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no history entry found with id %d", id)
	}

	return nil
}

func (historyManager *HistoryManager) ResetHistory() error {
	result := historyManager.db.Exec("DELETE FROM history_entries")
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// GetEntriesSince returns all history entries created after the given time, ordered by creation time (oldest first)
func (historyManager *HistoryManager) GetEntriesSince(since time.Time) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	result := historyManager.db.Where("created_at >= ?", since).
		Order("created_at asc").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
