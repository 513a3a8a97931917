package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/munnerz/goautoneg"

	"github.com/yigit/courseapi/internal/app/models/dto"
	"github.com/yigit/courseapi/internal/app/services"
	"github.com/yigit/courseapi/internal/middleware"
	"github.com/yigit/courseapi/internal/pkg/apperrors"
	"github.com/yigit/courseapi/internal/pkg/coursepb"
)

var offeredTypes = []string{gin.MIMEJSON, coursepb.ContentType}

// CourseController handles course lookups
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// wantsProtobuf reports whether the Accept header, q-values included, prefers
// protobuf over JSON. Missing or unmatched headers get JSON.
func wantsProtobuf(ctx *gin.Context) bool {
	accept := ctx.GetHeader("Accept")
	if accept == "" {
		return false
	}
	return goautoneg.Negotiate(accept, offeredTypes) == coursepb.ContentType
}

// parseCourseID parses a path segment as a 32-bit course id
func parseCourseID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

// GetCourse retrieves a course by ID
// @Summary Get course details
// @Description Retrieves a course with its enrolled students. Send Accept: application/x-protobuf for a protobuf body.
// @Tags courses
// @Produce json
// @Produce application/x-protobuf
// @Param id path int true "Course ID" Format(int32)
// @Success 200 {object} models.Course "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID format"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := parseCourseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid course ID").
			WithCode(string(dto.ErrorCodeValidationFailed)).
			WithField("id").
			WithDetails("Course ID must be a valid 32-bit integer"))
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if wantsProtobuf(ctx) {
		body, err := coursepb.Marshal(course)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, coursepb.ContentType, body)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// ListCourses retrieves all courses
// @Summary List courses
// @Description Retrieves all courses ordered by ID. The protobuf form is a stream of length-delimited Course messages.
// @Tags courses
// @Produce json
// @Produce application/x-protobuf
// @Success 200 {array} models.Course "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if wantsProtobuf(ctx) {
		body, err := coursepb.MarshalList(courses)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, coursepb.ContentType, body)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}
