package course

import (
	"time"

	"github.com/trezcool/darasa/core"
)

type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	nc.Color = core.CleanString(nc.Color, true /* lower */)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Blank fields fall back to the original's values.
type UpdateCourse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

func (uc *UpdateCourse) Validate(orig Course) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	if desc := core.CleanString(uc.Description); desc != "" {
		uc.Description = desc
	} else {
		uc.Description = orig.Description
	}
	if color := core.CleanString(uc.Color, true /* lower */); color != "" {
		uc.Color = color
	} else {
		uc.Color = orig.Color
	}
	return core.Validate.Struct(uc)
}

// CascadeResult reports what a course deletion took down with it.
type CascadeResult struct {
	ClassesDeleted int `json:"classesDeleted"`
	FilesDeleted   int `json:"filesDeleted"`
}
