package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/courseapi/internal/app/models"
	"github.com/yigit/courseapi/internal/app/repositories"
	"github.com/yigit/courseapi/internal/pkg/apperrors"
)

// CourseService defines the lookup operations behind the course endpoints
type CourseService interface {
	GetCourse(ctx context.Context, id int32) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
	}
}

// GetCourse retrieves a course by ID. Every id is passed to the repository as is.
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int32) (*models.Course, error) {
	course, err := s.courseRepo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course %d: %w", id, err)
	}
	return course, nil
}

// ListCourses retrieves all courses
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}
