package kvdb

import (
	"github.com/trezcool/darasa/core/file"
)

type fileRepository struct {
	db *DB
}

var _ file.Repository = (*fileRepository)(nil)

func NewFileRepository(db *DB) file.Repository {
	return &fileRepository{db: db}
}

func (r *fileRepository) SaveFile(f file.File) (file.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.files.t[f.ID] = &f
	if err := r.db.flushFiles(); err != nil {
		return file.File{}, err
	}
	return f, nil
}

func (r *fileRepository) GetFile(id string) (file.File, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if f, ok := r.db.files.t[id]; ok {
		return *f, nil
	}
	return file.File{}, file.ErrNotFound
}

func (r *fileRepository) QueryAllFiles() ([]file.File, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]file.File, 0, len(r.db.files.t))
	for _, f := range r.db.files.t {
		res = append(res, *f)
	}
	return res, nil
}

func (r *fileRepository) DeleteFilesByID(ids ...string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, id := range ids {
		delete(r.db.files.t, id)
	}
	return r.db.flushFiles()
}

func (r *fileRepository) ReplaceAllFiles(files []file.File) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.files.t = make(map[string]*file.File, len(files))
	for i := range files {
		f := files[i]
		r.db.files.t[f.ID] = &f
	}
	return r.db.flushFiles()
}
