package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yigit/courseapi/internal/app/models"
	"github.com/yigit/courseapi/internal/app/repositories"
	"github.com/yigit/courseapi/internal/pkg/apperrors"
)

//go:embed courses.json
var defaultCatalogue []byte

// DefaultCourses returns the sample catalogue loaded at startup
func DefaultCourses() []*models.Course {
	courses, err := LoadCourses(bytes.NewReader(defaultCatalogue))
	if err != nil {
		panic(fmt.Sprintf("seed: embedded catalogue: %v", err))
	}
	return courses
}

// LoadCourses decodes a JSON array of courses. Phone types may be names or numbers.
func LoadCourses(r io.Reader) ([]*models.Course, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var courses []*models.Course
	if err := dec.Decode(&courses); err != nil {
		return nil, fmt.Errorf("decode course catalogue: %w", err)
	}
	return courses, nil
}

// LoadCoursesFile reads a catalogue written in the LoadCourses format
func LoadCoursesFile(path string) ([]*models.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open course catalogue: %w", err)
	}
	defer f.Close()
	return LoadCourses(f)
}

// CreateDefaultData saves the given courses (DefaultCourses when none are given).
// Existing courses with the same id are replaced, so running it twice is harmless.
func CreateDefaultData(ctx context.Context, repo repositories.CourseRepository, lgr zerolog.Logger, courses ...*models.Course) error {
	if len(courses) == 0 {
		courses = DefaultCourses()
	}

	lgr.Info().Int("courses", len(courses)).Msg("Creating default course data...")
	validate := validator.New()
	var finalErr error

	for _, course := range courses {
		if err := validate.Struct(course); err != nil {
			lgr.Error().Err(err).Int32("courseID", course.ID).Msg("Skipping invalid course")
			finalErr = errors.Join(finalErr, fmt.Errorf("course %d: %w: %w", course.ID, apperrors.ErrValidationFailed, err))
			continue
		}
		if err := repo.SaveCourse(ctx, course); err != nil {
			lgr.Error().Err(err).Int32("courseID", course.ID).Msg("Error saving course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data creation finished.")
	return finalErr
}
