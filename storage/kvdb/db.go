// Package kvdb implements the registry repositories over a durable
// key-value store. The three documents are loaded once at startup, held in
// memory for the session and flushed back wholesale after every mutation.
package kvdb

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/class"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/file"
)

type (
	DB struct {
		kv     core.KV
		logger core.Logger

		// one lock for all tables: cascades touch classes and files
		// together and no reader may see them half done.
		mu sync.RWMutex

		classes *classTable
		courses *courseTable
		files   *fileTable
	}

	classTable struct {
		t []*class.Class
	}

	courseTable struct {
		t map[string]*course.Course
	}

	fileTable struct {
		t map[string]*file.File
	}
)

// Open loads the three persisted documents. An absent document defaults to
// empty; a malformed one is reported as a warning and also defaults to
// empty rather than failing startup.
func Open(kv core.KV, logger core.Logger) (*DB, error) {
	db := &DB{
		kv:      kv,
		logger:  logger,
		classes: &classTable{},
		courses: &courseTable{t: make(map[string]*course.Course)},
		files:   &fileTable{t: make(map[string]*file.File)},
	}

	var classes []class.Class
	if db.loadDoc(core.KeyClasses, &classes) {
		sort.SliceStable(classes, func(i, j int) bool { return classes[i].Date > classes[j].Date })
		for i := range classes {
			c := classes[i]
			db.classes.t = append(db.classes.t, &c)
		}
	}

	var courses []course.Course
	if db.loadDoc(core.KeyCourses, &courses) {
		for i := range courses {
			c := courses[i]
			db.courses.t[c.ID] = &c
		}
	}

	var files map[string]file.File
	if db.loadDoc(core.KeyFiles, &files) {
		for id, f := range files {
			f := f
			f.ID = id
			db.files.t[id] = &f
		}
	}
	return db, nil
}

// loadDoc reports whether the document was present and well formed.
func (db *DB) loadDoc(key string, v interface{}) bool {
	raw, err := db.kv.Get(key)
	if err != nil {
		if errors.Cause(err) == core.ErrKeyNotFound {
			return false
		}
		db.logger.Warn(fmt.Sprintf("loading %q: %v; starting empty", key, err))
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		db.logger.Warn(fmt.Sprintf("document %q is malformed: %v; starting empty", key, err))
		return false
	}
	return true
}

// flush serializes a document and writes it through; callers hold the lock.
func (db *DB) flush(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return core.NewStorageError(key, err)
	}
	if err := db.kv.Put(key, raw); err != nil {
		return core.NewStorageError(key, err)
	}
	return nil
}

// RestoreAll swaps all three tables for the given records under one lock
// acquisition and flushes each document. A flush failure surfaces as a
// StorageError; the in-memory swap has already happened either way, matching
// the store's write-through posture.
func (db *DB) RestoreAll(classes []class.Class, courses []course.Course, files []file.File) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.classes.t = make([]*class.Class, 0, len(classes))
	for i := range classes {
		c := classes[i]
		db.classes.t = append(db.classes.t, &c)
	}
	db.courses.t = make(map[string]*course.Course, len(courses))
	for i := range courses {
		c := courses[i]
		db.courses.t[c.ID] = &c
	}
	db.files.t = make(map[string]*file.File, len(files))
	for i := range files {
		f := files[i]
		db.files.t[f.ID] = &f
	}

	if err := db.flushFiles(); err != nil {
		return err
	}
	if err := db.flushCourses(); err != nil {
		return err
	}
	return db.flushClasses()
}

func (db *DB) flushClasses() error {
	doc := make([]class.Class, 0, len(db.classes.t))
	for _, c := range db.classes.t {
		doc = append(doc, *c)
	}
	return db.flush(core.KeyClasses, doc)
}

func (db *DB) flushCourses() error {
	doc := make([]course.Course, 0, len(db.courses.t))
	for _, c := range db.courses.t {
		doc = append(doc, *c)
	}
	return db.flush(core.KeyCourses, doc)
}

func (db *DB) flushFiles() error {
	doc := make(map[string]file.File, len(db.files.t))
	for id, f := range db.files.t {
		doc[id] = *f
	}
	return db.flush(core.KeyFiles, doc)
}
