package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yigit/courseapi/internal/app/models"
)

// MemoryCourseRepository keeps courses in a map keyed by id
type MemoryCourseRepository struct {
	mu      sync.RWMutex
	courses map[int32]*models.Course
}

// NewMemoryCourseRepository creates an empty MemoryCourseRepository
func NewMemoryCourseRepository(courses ...*models.Course) *MemoryCourseRepository {
	r := &MemoryCourseRepository{courses: make(map[int32]*models.Course, len(courses))}
	for _, c := range courses {
		r.courses[c.ID] = c.Clone()
	}
	return r
}

// GetCourse returns a copy of the stored course
func (r *MemoryCourseRepository) GetCourse(ctx context.Context, id int32) (*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	course, ok := r.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return course.Clone(), nil
}

// ListCourses returns copies of all courses ordered by id
func (r *MemoryCourseRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	courses := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		courses = append(courses, c.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

// SaveCourse stores a copy of the course
func (r *MemoryCourseRepository) SaveCourse(ctx context.Context, course *models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if course == nil {
		return fmt.Errorf("save course: nil course")
	}
	if id, dup := duplicateStudentID(course); dup {
		return fmt.Errorf("course %d student %d: %w", course.ID, id, ErrDuplicateStudent)
	}

	r.mu.Lock()
	r.courses[course.ID] = course.Clone()
	r.mu.Unlock()
	return nil
}
