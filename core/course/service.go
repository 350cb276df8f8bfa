package course

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/trezcool/darasa/core"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		GetCourse(id string) (Course, error)
		QueryAllCourses() ([]Course, error)
		UpdateCourse(c Course) (Course, error)
		// DeleteCoursesByID ignores ids that are not in the registry.
		DeleteCoursesByID(ids ...string) error
		ReplaceAllCourses(courses []Course) error
	}

	// ClassCascader removes every class of a course along with the files
	// those classes exclusively referenced.
	ClassCascader interface {
		DeleteByCourse(courseID string) (classes, files int, err error)
	}

	Service struct {
		repo     Repository
		cascader ClassCascader
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BindCascader wires the class registry in after construction; the class
// service itself depends on this registry, so the link cannot be made in
// NewService.
func (svc *Service) BindCascader(c ClassCascader) {
	svc.cascader = c
}

func (svc *Service) Create(nc NewCourse) (Course, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}
	c := Course{
		ID:          core.NewID("course"),
		Name:        nc.Name,
		Description: nc.Description,
		Color:       nc.Color,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateCourse(c)
}

func (svc *Service) Get(id string) (Course, error) {
	return svc.repo.GetCourse(id)
}

// List returns all courses ordered by name, case-insensitive.
func (svc *Service) List() ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	sort.Slice(courses, func(i, j int) bool {
		ni, nj := strings.ToLower(courses[i].Name), strings.ToLower(courses[j].Name)
		if ni == nj {
			return courses[i].Name < courses[j].Name
		}
		return ni < nj
	})
	return courses, nil
}

func (svc *Service) Update(id string, uc UpdateCourse) (Course, error) {
	orig, err := svc.repo.GetCourse(id)
	if err != nil {
		return Course{}, err
	}
	if err := uc.Validate(orig); err != nil {
		return Course{}, err
	}
	orig.Name = uc.Name
	orig.Description = uc.Description
	orig.Color = uc.Color
	return svc.repo.UpdateCourse(orig)
}

// ReplaceAll swaps the whole registry for the given records (backup import).
func (svc *Service) ReplaceAll(courses []Course) error {
	return svc.repo.ReplaceAllCourses(courses)
}

// Delete removes the course and cascades: all of its classes go, and so do
// the files those classes exclusively referenced.
func (svc *Service) Delete(id string) (CascadeResult, error) {
	if _, err := svc.repo.GetCourse(id); err != nil {
		return CascadeResult{}, err
	}
	var res CascadeResult
	if svc.cascader != nil {
		classes, files, err := svc.cascader.DeleteByCourse(id)
		if err != nil {
			return CascadeResult{}, err
		}
		res.ClassesDeleted, res.FilesDeleted = classes, files
	}
	if err := svc.repo.DeleteCoursesByID(id); err != nil {
		return CascadeResult{}, err
	}
	return res, nil
}
