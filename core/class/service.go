package class

import (
	"errors"
	"sort"
	"strings"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/file"
)

var (
	// errors
	ErrNotFound         = errors.New("class not found")
	ErrNoCourseSelected = errors.New("no course selected")
	ErrNoActivities     = errors.New("a class needs at least one activity")
	ErrUnknownCourse    = errors.New("course does not exist")
)

type (
	Repository interface {
		CreateClass(c Class) (Class, error)
		GetClass(id string) (Class, error)
		QueryAllClasses() ([]Class, error)
		// ReplaceClass swaps the stored record carrying c's id for c; no
		// reader ever sees the old and new record side by side.
		ReplaceClass(c Class) (Class, error)
		// DeleteClassCascade removes the classes and every file they
		// exclusively referenced in one step; no reader sees a class gone
		// while its orphaned blob is still retrievable. Unknown ids are
		// ignored. Returns the number of blobs reclaimed.
		DeleteClassCascade(ids ...string) (filesDeleted int, err error)
		ReplaceAllClasses(classes []Class) error
	}

	// CourseGetter resolves course ids at write time.
	CourseGetter interface {
		Get(id string) (course.Course, error)
	}

	Service struct {
		repo    Repository
		files   *file.Service
		courses CourseGetter
	}
)

func NewService(repo Repository, files *file.Service, courses CourseGetter) *Service {
	return &Service{repo: repo, files: files, courses: courses}
}

func (svc *Service) checkCourse(id string) error {
	if _, err := svc.courses.Get(id); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return core.NewValidationError(ErrUnknownCourse, core.FieldError{Field: "courseId", Error: ErrUnknownCourse.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nc NewClass) (Class, error) {
	if err := nc.Validate(svc); err != nil {
		return Class{}, err
	}
	c := Class{
		ID:            core.NewID("class"),
		Date:          nc.Date,
		CourseID:      nc.CourseID,
		Activities:    nc.cleanActivities(),
		Homework:      nc.Homework,
		HomeworkHTML:  nc.HomeworkHTML,
		HomeworkFiles: nc.HomeworkFiles,
		HomeworkLinks: nc.HomeworkLinks,
	}
	return svc.repo.CreateClass(c)
}

// Import inserts an externally-sourced class under a fresh id. Empty-text
// activities are still filtered and at least one must remain, but the course
// reference is deliberately not checked: a class imported from someone
// else's id space simply belongs to no visible course.
func (svc *Service) Import(c Class) (Class, error) {
	acts := make([]Activity, 0, len(c.Activities))
	for _, act := range c.Activities {
		if strings.TrimSpace(act.Text) == "" {
			continue
		}
		acts = append(acts, act)
	}
	if len(acts) == 0 {
		return Class{}, core.NewValidationError(ErrNoActivities, core.FieldError{Field: "activities", Error: ErrNoActivities.Error()})
	}
	c.Activities = acts
	c.ID = core.NewID("class")
	return svc.repo.CreateClass(c)
}

func (svc *Service) Get(id string) (Class, error) {
	return svc.repo.GetClass(id)
}

// Update replaces the record under the original id; the id is never
// regenerated.
func (svc *Service) Update(id string, uc UpdateClass) (Class, error) {
	orig, err := svc.repo.GetClass(id)
	if err != nil {
		return Class{}, err
	}
	if err := uc.Validate(svc); err != nil {
		return Class{}, err
	}
	c := Class{
		ID:            orig.ID,
		Date:          uc.Date,
		CourseID:      uc.CourseID,
		Activities:    uc.cleanActivities(),
		Homework:      uc.Homework,
		HomeworkHTML:  uc.HomeworkHTML,
		HomeworkFiles: uc.HomeworkFiles,
		HomeworkLinks: uc.HomeworkLinks,
	}
	return svc.repo.ReplaceClass(c)
}

// Delete removes the class and every file it exclusively referenced.
func (svc *Service) Delete(id string) error {
	if _, err := svc.repo.GetClass(id); err != nil {
		return err
	}
	_, err := svc.repo.DeleteClassCascade(id)
	return err
}

// DeleteByCourse removes every class of a course, reclaiming their files;
// returns the class and file counts for the caller to report.
func (svc *Service) DeleteByCourse(courseID string) (int, int, error) {
	classes, err := svc.repo.QueryAllClasses()
	if err != nil {
		return 0, 0, err
	}
	var ids []string
	for _, c := range classes {
		if c.CourseID == courseID {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return 0, 0, nil
	}
	files, err := svc.repo.DeleteClassCascade(ids...)
	if err != nil {
		return 0, 0, err
	}
	return len(ids), files, nil
}

// List returns all classes ordered by date descending.
func (svc *Service) List() ([]Class, error) {
	classes, err := svc.repo.QueryAllClasses()
	if err != nil {
		return nil, err
	}
	sortByDateDesc(classes)
	return classes, nil
}

// ListByCourse returns the course's classes ordered by date descending.
// A dangling course reference belongs to no visible course.
func (svc *Service) ListByCourse(courseID string) ([]Class, error) {
	classes, err := svc.repo.QueryAllClasses()
	if err != nil {
		return nil, err
	}
	scoped := make([]Class, 0, len(classes))
	for _, c := range classes {
		if c.CourseID == courseID {
			scoped = append(scoped, c)
		}
	}
	sortByDateDesc(scoped)
	return scoped, nil
}

// Search does a case-insensitive substring match over activity text and
// type, file names, link names and homework text. An empty courseID scopes
// the search globally.
func (svc *Service) Search(courseID, term string) ([]Class, error) {
	var classes []Class
	var err error
	if courseID == "" {
		classes, err = svc.List()
	} else {
		classes, err = svc.ListByCourse(courseID)
	}
	if err != nil {
		return nil, err
	}
	term = core.CleanString(term, true /* lower */)
	if term == "" {
		return classes, nil
	}
	matched := make([]Class, 0, len(classes))
	for _, c := range classes {
		if classMatches(c, term) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func classMatches(c Class, term string) bool {
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), term) }
	for _, act := range c.Activities {
		if contains(act.Text) || contains(string(act.Type)) {
			return true
		}
		for _, f := range act.Files {
			if contains(f.Name) {
				return true
			}
		}
		for _, l := range act.Links {
			if contains(l.Name) {
				return true
			}
		}
	}
	if contains(c.Homework) {
		return true
	}
	for _, f := range c.HomeworkFiles {
		if contains(f.Name) {
			return true
		}
	}
	for _, l := range c.HomeworkLinks {
		if contains(l.Name) {
			return true
		}
	}
	return false
}

// ReplaceAll swaps the whole registry for the given records (backup import).
func (svc *Service) ReplaceAll(classes []Class) error {
	return svc.repo.ReplaceAllClasses(classes)
}

// Stats reports registry counts and total blob size.
func (svc *Service) Stats() (Stats, error) {
	classes, err := svc.repo.QueryAllClasses()
	if err != nil {
		return Stats{}, err
	}
	count, err := svc.files.Count()
	if err != nil {
		return Stats{}, err
	}
	size, err := svc.files.TotalSize()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Classes: len(classes), Files: count, StorageBytes: size}, nil
}

// sortByDateDesc orders classes most recent first. Dates are ISO strings so
// the lexical order is the chronological one; equal dates keep their stored
// relative order.
func sortByDateDesc(classes []Class) {
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].Date > classes[j].Date
	})
}
