package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/courseapi/internal/app/models"
	"github.com/yigit/courseapi/internal/db"
	"github.com/yigit/courseapi/internal/pkg/dberrors"
	"github.com/yigit/courseapi/internal/pkg/logger"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresCourseRepository handles course database operations.
// Every call runs in its own transaction so a course and its students
// always come from the same snapshot.
type PostgresCourseRepository struct {
	pool db.TxBeginner
	sb   squirrel.StatementBuilderType
}

// NewPostgresCourseRepository creates a new PostgresCourseRepository
func NewPostgresCourseRepository(pool db.TxBeginner) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type studentRow struct {
	courseID int32
	student  models.Student
}

type phoneRow struct {
	courseID  int32
	studentID int32
	phone     models.PhoneNumber
}

func (r *PostgresCourseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select("id", "course_name").From("courses")
}

func (r *PostgresCourseRepository) selectStudents(courseIDs []int32) squirrel.SelectBuilder {
	return r.sb.Select("course_id", "id", "first_name", "last_name", "email").
		From("students").
		Where(squirrel.Eq{"course_id": courseIDs}).
		OrderBy("course_id ASC", "position ASC")
}

func (r *PostgresCourseRepository) selectPhones(courseIDs []int32) squirrel.SelectBuilder {
	return r.sb.Select("course_id", "student_id", "number", "phone_type").
		From("student_phones").
		Where(squirrel.Eq{"course_id": courseIDs}).
		OrderBy("course_id ASC", "student_id ASC", "position ASC")
}

// GetCourse retrieves a course and its students by ID
func (r *PostgresCourseRepository) GetCourse(ctx context.Context, id int32) (*models.Course, error) {
	sql, args, err := r.selectCourses().Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = db.WithTransaction(ctx, r.pool, db.ReadOnlySnapshot, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CourseName); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("course %d: %w", id, ErrNotFound)
			}
			logger.Error().Err(err).Int32("courseID", id).Msg("Error scanning course row")
			return fmt.Errorf("error getting course by ID: %w", err)
		}
		return r.loadStudents(ctx, tx, []*models.Course{course})
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses retrieves all courses ordered by ID
func (r *PostgresCourseRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.selectCourses().OrderBy("id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	courses := []*models.Course{}
	err = db.WithTransaction(ctx, r.pool, db.ReadOnlySnapshot, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Error executing list courses query")
			return fmt.Errorf("error querying courses: %w", err)
		}
		courses, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Course, error) {
			c := &models.Course{}
			err := row.Scan(&c.ID, &c.CourseName)
			return c, err
		})
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course rows")
			return fmt.Errorf("error scanning course rows: %w", err)
		}

		if len(courses) == 0 {
			return nil
		}
		return r.loadStudents(ctx, tx, courses)
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// loadStudents fills Students (and their phones) for the given courses
func (r *PostgresCourseRepository) loadStudents(ctx context.Context, q querier, courses []*models.Course) error {
	ids := make([]int32, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}

	sql, args, err := r.selectStudents(ids).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build students query: %w", err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing students query")
		return fmt.Errorf("error querying students: %w", err)
	}
	students, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (studentRow, error) {
		var s studentRow
		err := row.Scan(&s.courseID, &s.student.ID, &s.student.FirstName, &s.student.LastName, &s.student.Email)
		return s, err
	})
	if err != nil {
		return fmt.Errorf("error scanning student rows: %w", err)
	}

	sql, args, err = r.selectPhones(ids).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build phones query: %w", err)
	}
	rows, err = q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing phones query")
		return fmt.Errorf("error querying phones: %w", err)
	}
	phones, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (phoneRow, error) {
		var p phoneRow
		var phoneType int16
		err := row.Scan(&p.courseID, &p.studentID, &p.phone.Number, &phoneType)
		p.phone.Type = models.PhoneType(phoneType)
		return p, err
	})
	if err != nil {
		return fmt.Errorf("error scanning phone rows: %w", err)
	}

	assembleCourses(courses, students, phones)
	return nil
}

// assembleCourses attaches rows to their courses. Rows must already be in position order.
func assembleCourses(courses []*models.Course, students []studentRow, phones []phoneRow) {
	type key struct{ course, student int32 }
	phonesByStudent := make(map[key][]models.PhoneNumber)
	for _, p := range phones {
		k := key{p.courseID, p.studentID}
		phonesByStudent[k] = append(phonesByStudent[k], p.phone)
	}

	byID := make(map[int32]*models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	for _, s := range students {
		c, ok := byID[s.courseID]
		if !ok {
			continue
		}
		s.student.Phones = phonesByStudent[key{s.courseID, s.student.ID}]
		c.Students = append(c.Students, s.student)
	}
}

// SaveCourse upserts the course and replaces its students in one transaction
func (r *PostgresCourseRepository) SaveCourse(ctx context.Context, course *models.Course) error {
	if course == nil {
		return fmt.Errorf("save course: nil course")
	}

	statements, err := r.saveStatements(course)
	if err != nil {
		logger.Error().Err(err).Msg("Error building save course SQL")
		return fmt.Errorf("failed to build save course queries: %w", err)
	}

	return db.WithTransaction(ctx, r.pool, pgx.TxOptions{}, func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt.sql, stmt.args...); err != nil {
				if dberrors.IsDuplicateConstraintError(err, dberrors.StudentsPrimaryKey) {
					return fmt.Errorf("course %d: %w", course.ID, ErrDuplicateStudent)
				}
				logger.Error().Err(err).Int32("courseID", course.ID).Msg("Error executing save course statement")
				return fmt.Errorf("error saving course %d: %w", course.ID, err)
			}
		}
		return nil
	})
}

type statement struct {
	sql  string
	args []interface{}
}

func (r *PostgresCourseRepository) saveStatements(course *models.Course) ([]statement, error) {
	var statements []statement
	add := func(b squirrel.Sqlizer) error {
		sql, args, err := b.ToSql()
		if err != nil {
			return err
		}
		statements = append(statements, statement{sql: sql, args: args})
		return nil
	}

	if err := add(r.sb.Insert("courses").
		Columns("id", "course_name").
		Values(course.ID, course.CourseName).
		Suffix("ON CONFLICT (id) DO UPDATE SET course_name = EXCLUDED.course_name")); err != nil {
		return nil, err
	}

	// student_phones rows go with the students through ON DELETE CASCADE
	if err := add(r.sb.Delete("students").Where(squirrel.Eq{"course_id": course.ID})); err != nil {
		return nil, err
	}

	if len(course.Students) == 0 {
		return statements, nil
	}

	students := r.sb.Insert("students").Columns("course_id", "id", "position", "first_name", "last_name", "email")
	phones := r.sb.Insert("student_phones").Columns("course_id", "student_id", "position", "number", "phone_type")
	phoneCount := 0
	for i, s := range course.Students {
		students = students.Values(course.ID, s.ID, i, s.FirstName, s.LastName, s.Email)
		for j, p := range s.Phones {
			phones = phones.Values(course.ID, s.ID, j, p.Number, int16(p.Type))
			phoneCount++
		}
	}
	if err := add(students); err != nil {
		return nil, err
	}
	if phoneCount > 0 {
		if err := add(phones); err != nil {
			return nil, err
		}
	}
	return statements, nil
}
