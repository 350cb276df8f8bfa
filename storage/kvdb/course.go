package kvdb

import (
	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (r *courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.courses.t[c.ID] = &c
	if err := r.db.flushCourses(); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (r *courseRepository) GetCourse(id string) (course.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if c, ok := r.db.courses.t[id]; ok {
		return *c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (r *courseRepository) QueryAllCourses() ([]course.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]course.Course, 0, len(r.db.courses.t))
	for _, c := range r.db.courses.t {
		res = append(res, *c)
	}
	return res, nil
}

func (r *courseRepository) UpdateCourse(c course.Course) (course.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses.t[c.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	r.db.courses.t[c.ID] = &c
	if err := r.db.flushCourses(); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (r *courseRepository) DeleteCoursesByID(ids ...string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, id := range ids {
		delete(r.db.courses.t, id)
	}
	return r.db.flushCourses()
}

func (r *courseRepository) ReplaceAllCourses(courses []course.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.courses.t = make(map[string]*course.Course, len(courses))
	for i := range courses {
		c := courses[i]
		r.db.courses.t[c.ID] = &c
	}
	return r.db.flushCourses()
}
