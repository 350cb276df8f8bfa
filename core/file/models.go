package file

import (
	"strings"

	"github.com/trezcool/darasa/core"
)

// File is a stored blob: metadata plus the full content as a base64 data URL.
// Owned exclusively by the blob store; classes hold Ref projections only.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // MIME type
	Size int64  `json:"size"` // bytes
	Data string `json:"data"` // data:<mime>;base64,<payload>
}

// Ref returns the metadata projection referenced from activities and
// homework blocks; Data is never duplicated outside the store.
func (f File) Ref() Ref {
	return Ref{ID: f.ID, Name: f.Name, Type: f.Type, Size: f.Size}
}

func (f File) dataPrefix() string {
	return "data:" + f.Type + ";base64,"
}

type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// NewFile contains information needed to store a new File.
type NewFile struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Size int64  `json:"size" validate:"min=0"` // zero-byte uploads are fine; only the ceiling is enforced
	Data string `json:"data" validate:"required"`
}

func (nf *NewFile) Validate(svc *Service) error {
	nf.Name = core.CleanString(nf.Name)
	nf.Type = core.CleanString(nf.Type, true /* lower */)

	if err := core.Validate.Struct(nf); err != nil {
		return err
	}
	if nf.Size > svc.maxBytes {
		return core.NewValidationError(ErrFileTooLarge, core.FieldError{Field: "size", Error: ErrFileTooLarge.Error()})
	}
	if !svc.typeAllowed(nf.Type) {
		return core.NewValidationError(ErrFileTypeNotAllowed, core.FieldError{Field: "type", Error: ErrFileTypeNotAllowed.Error()})
	}
	if !strings.HasPrefix(nf.Data, "data:"+nf.Type+";base64,") {
		return core.NewValidationError(ErrBadDataURL, core.FieldError{Field: "data", Error: ErrBadDataURL.Error()})
	}
	return nil
}
