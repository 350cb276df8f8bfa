// Package kvstore provides the durable key-value backends the registries
// are persisted to: a sqlite-backed table for real use and an in-memory map
// for tests. Values are whole JSON documents.
package kvstore

import (
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/trezcool/darasa/core"
)

// Entry is one persisted document.
type Entry struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value []byte
}

func (Entry) TableName() string { return "kv_entries" }

type sqliteKV struct {
	db *gorm.DB
}

var _ core.KV = (*sqliteKV)(nil)

// OpenSQLite opens (creating if needed) the key-value table at path.
func OpenSQLite(path string) (core.KV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening kv store")
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, errors.Wrap(err, "migrating kv store")
	}
	return &sqliteKV{db: db}, nil
}

func (kv *sqliteKV) Get(key string) ([]byte, error) {
	var e Entry
	if err := kv.db.First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrap(err, "reading "+key)
	}
	return e.Value, nil
}

func (kv *sqliteKV) Put(key string, value []byte) error {
	e := Entry{Key: key, Value: value}
	err := kv.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&e).Error
	return errors.Wrap(err, "writing "+key)
}

func (kv *sqliteKV) Delete(key string) error {
	err := kv.db.Delete(&Entry{}, "key = ?", key).Error
	return errors.Wrap(err, "deleting "+key)
}

func (kv *sqliteKV) Close() error {
	db, err := kv.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
