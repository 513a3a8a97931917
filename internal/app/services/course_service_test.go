package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/courseapi/internal/app/models"
	"github.com/yigit/courseapi/internal/app/repositories"
	"github.com/yigit/courseapi/internal/pkg/apperrors"
)

type failingRepository struct {
	repositories.CourseRepository
	err error
}

func (f failingRepository) GetCourse(context.Context, int32) (*models.Course, error) {
	return nil, f.err
}

func (f failingRepository) ListCourses(context.Context) ([]*models.Course, error) {
	return nil, f.err
}

func TestCourseService_GetCourse(t *testing.T) {
	repo := repositories.NewMemoryCourseRepository(
		&models.Course{ID: 1, CourseName: "Algorithms"},
		&models.Course{ID: 0, CourseName: "Orientation"},
		&models.Course{ID: -3, CourseName: "Archived"},
	)
	svc := NewCourseService(repo)

	tests := []struct {
		name    string
		id      int32
		want    string
		wantErr error
	}{
		{name: "found", id: 1, want: "Algorithms"},
		{name: "zero id reaches repository", id: 0, want: "Orientation"},
		{name: "negative id reaches repository", id: -3, want: "Archived"},
		{name: "missing", id: 999, wantErr: apperrors.ErrCourseNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetCourse(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CourseName)
		})
	}
}

func TestCourseService_WrapsRepositoryFailures(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewCourseService(failingRepository{err: boom})

	_, err := svc.GetCourse(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = svc.ListCourses(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCourseService_ListCourses(t *testing.T) {
	svc := NewCourseService(repositories.NewMemoryCourseRepository(
		&models.Course{ID: 2, CourseName: "Operating Systems"},
		&models.Course{ID: 1, CourseName: "Algorithms"},
	))

	courses, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Algorithms", courses[0].CourseName)
}
