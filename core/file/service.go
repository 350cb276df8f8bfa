package file

import (
	"errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound           = errors.New("file not found")
	ErrFileTooLarge       = errors.New("file is too large (max. 10MB)")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrBadDataURL         = errors.New("file content is not a matching base64 data URL")
)

type (
	Repository interface {
		// SaveFile inserts or replaces the record with f's id.
		SaveFile(f File) (File, error)
		GetFile(id string) (File, error)
		QueryAllFiles() ([]File, error)
		// DeleteFilesByID ignores ids that are not in the store.
		DeleteFilesByID(ids ...string) error
		ReplaceAllFiles(files []File) error
	}

	Service struct {
		repo     Repository
		maxBytes int64
		allowed  []string
	}
)

func NewService(conf *core.Config, repo Repository) *Service {
	return &Service{
		repo:     repo,
		maxBytes: conf.Upload.MaxBytes,
		allowed:  conf.Upload.AllowedTypes,
	}
}

func (svc *Service) typeAllowed(mime string) bool {
	for _, t := range svc.allowed {
		if t == mime {
			return true
		}
	}
	return false
}

// Put validates and stores a new blob under a fresh id.
func (svc *Service) Put(nf NewFile) (File, error) {
	if err := nf.Validate(svc); err != nil {
		return File{}, err
	}
	f := File{
		ID:   core.NewID("file"),
		Name: nf.Name,
		Type: nf.Type,
		Size: nf.Size,
		Data: nf.Data,
	}
	return svc.repo.SaveFile(f)
}

// Check validates an externally-sourced blob against the store's limits
// without writing anything.
func (svc *Service) Check(f File) error {
	nf := NewFile{Name: f.Name, Type: f.Type, Size: f.Size, Data: f.Data}
	return nf.Validate(svc)
}

// Restore stores a blob keeping its original id; existing records with the
// same id are overwritten (ids are globally unique by construction, so the
// last writer wins). Used by the share import and backup paths.
func (svc *Service) Restore(f File) (File, error) {
	nf := NewFile{Name: f.Name, Type: f.Type, Size: f.Size, Data: f.Data}
	if err := nf.Validate(svc); err != nil {
		return File{}, err
	}
	f.Name, f.Type = nf.Name, nf.Type
	return svc.repo.SaveFile(f)
}

func (svc *Service) Get(id string) (File, error) {
	return svc.repo.GetFile(id)
}

func (svc *Service) All() ([]File, error) {
	return svc.repo.QueryAllFiles()
}

// Delete is idempotent; deleting an unknown id is a no-op.
func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteFilesByID(ids...)
}

// SizeOf reads a blob's byte size without transferring its data.
func (svc *Service) SizeOf(id string) (int64, error) {
	f, err := svc.repo.GetFile(id)
	if err != nil {
		return 0, err
	}
	return f.Size, nil
}

// TotalSize sums the byte sizes of all stored blobs.
func (svc *Service) TotalSize() (int64, error) {
	files, err := svc.repo.QueryAllFiles()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total, nil
}

// ReplaceAll swaps the whole store for the given records (backup import).
func (svc *Service) ReplaceAll(files []File) error {
	return svc.repo.ReplaceAllFiles(files)
}

func (svc *Service) Count() (int, error) {
	files, err := svc.repo.QueryAllFiles()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}
