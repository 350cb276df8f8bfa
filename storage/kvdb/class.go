package kvdb

import (
	"github.com/trezcool/darasa/core/class"
)

type classRepository struct {
	db *DB
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db}
}

func (r *classRepository) query() []class.Class {
	res := make([]class.Class, 0, len(r.db.classes.t))
	for _, c := range r.db.classes.t {
		res = append(res, *c)
	}
	return res
}

func (r *classRepository) CreateClass(c class.Class) (class.Class, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	// most recent first in insertion order; display order is re-derived by
	// date at read time.
	r.db.classes.t = append([]*class.Class{&c}, r.db.classes.t...)
	if err := r.db.flushClasses(); err != nil {
		return class.Class{}, err
	}
	return c, nil
}

func (r *classRepository) GetClass(id string) (class.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, c := range r.db.classes.t {
		if c.ID == id {
			return *c, nil
		}
	}
	return class.Class{}, class.ErrNotFound
}

func (r *classRepository) QueryAllClasses() ([]class.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.query(), nil
}

func (r *classRepository) ReplaceClass(c class.Class) (class.Class, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, old := range r.db.classes.t {
		if old.ID == c.ID {
			r.db.classes.t[i] = &c
			if err := r.db.flushClasses(); err != nil {
				return class.Class{}, err
			}
			return c, nil
		}
	}
	return class.Class{}, class.ErrNotFound
}

// DeleteClassCascade drops the classes and reclaims their now-orphaned
// files under one lock acquisition, so no reader sees a class gone while
// its exclusive blob is still retrievable.
func (r *classRepository) DeleteClassCascade(ids ...string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var candidates []string
	kept := r.db.classes.t[:0]
	for _, c := range r.db.classes.t {
		if drop[c.ID] {
			candidates = append(candidates, c.FileIDs()...)
			continue
		}
		kept = append(kept, c)
	}
	r.db.classes.t = kept

	reclaimed := 0
	for _, fid := range candidates {
		referenced := false
		for _, c := range kept {
			if c.ReferencesFile(fid) {
				referenced = true
				break
			}
		}
		if referenced {
			continue
		}
		if _, ok := r.db.files.t[fid]; ok {
			delete(r.db.files.t, fid)
			reclaimed++
		}
	}

	if err := r.db.flushClasses(); err != nil {
		return reclaimed, err
	}
	if reclaimed > 0 {
		if err := r.db.flushFiles(); err != nil {
			return reclaimed, err
		}
	}
	return reclaimed, nil
}

func (r *classRepository) ReplaceAllClasses(classes []class.Class) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.classes.t = make([]*class.Class, 0, len(classes))
	for i := range classes {
		c := classes[i]
		r.db.classes.t = append(r.db.classes.t, &c)
	}
	return r.db.flushClasses()
}
