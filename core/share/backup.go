package share

import (
	"encoding/json"
	"time"

	"github.com/trezcool/darasa/core/class"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/file"
)

const backupVersion = "1.0"

// Backup is the full-store export document.
type Backup struct {
	Classes    []class.Class        `json:"classes"`
	Courses    []course.Course      `json:"courses"`
	Files      map[string]file.File `json:"files"`
	ExportDate time.Time            `json:"exportDate"`
	Version    string               `json:"version"`
}

// ExportBackup snapshots all three registries.
func (svc *Service) ExportBackup() (Backup, error) {
	classes, err := svc.classes.List()
	if err != nil {
		return Backup{}, err
	}
	courses, err := svc.courses.List()
	if err != nil {
		return Backup{}, err
	}
	files, err := svc.files.All()
	if err != nil {
		return Backup{}, err
	}
	b := Backup{
		Classes:    classes,
		Courses:    courses,
		Files:      make(map[string]file.File, len(files)),
		ExportDate: time.Now().UTC(),
		Version:    backupVersion,
	}
	for _, f := range files {
		b.Files[f.ID] = f
	}
	return b, nil
}

// ImportBackup replaces all three registries wholesale with the document's
// contents, in a single restore step. A malformed document is a DecodeError
// and leaves the registries untouched.
func (svc *Service) ImportBackup(raw []byte) (Backup, error) {
	var b Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return Backup{}, NewDecodeError("invalid backup document", err)
	}
	if b.Classes == nil && b.Courses == nil && b.Files == nil {
		return Backup{}, NewDecodeError("backup document holds no data", nil)
	}

	files := make([]file.File, 0, len(b.Files))
	for id, f := range b.Files {
		f.ID = id
		files = append(files, f)
	}
	if err := svc.restorer.RestoreAll(b.Classes, b.Courses, files); err != nil {
		return Backup{}, err
	}
	return b, nil
}
