package repositories

import (
	"context"
	"errors"

	"github.com/yigit/courseapi/internal/app/models"
	"github.com/yigit/courseapi/internal/db"
)

// ErrNotFound is returned by every store when a course id is unknown
var ErrNotFound = errors.New("record not found")

// ErrDuplicateStudent is returned by SaveCourse when two students share an id
var ErrDuplicateStudent = errors.New("duplicate student id in course")

// CourseRepository is the lookup collaborator behind the course endpoints.
// Implementations must be safe for concurrent use.
type CourseRepository interface {
	GetCourse(ctx context.Context, id int32) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	// SaveCourse inserts the course or replaces the stored one with the same id
	SaveCourse(ctx context.Context, course *models.Course) error
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository CourseRepository
}

func duplicateStudentID(course *models.Course) (int32, bool) {
	seen := make(map[int32]struct{}, len(course.Students))
	for _, s := range course.Students {
		if _, ok := seen[s.ID]; ok {
			return s.ID, true
		}
		seen[s.ID] = struct{}{}
	}
	return 0, false
}

// NewRepositories initializes the PostgreSQL backed repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CourseRepository: NewPostgresCourseRepository(database.Pool),
	}
}

// NewMemoryRepositories initializes process-local repositories
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		CourseRepository: NewMemoryCourseRepository(),
	}
}
