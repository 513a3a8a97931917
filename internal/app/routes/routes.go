package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/courseapi/internal/app/controllers"
	"github.com/yigit/courseapi/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, courseController *controllers.CourseController, storageDriver string) {
	courses := router.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourse)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Data: dto.HealthStatus{Status: "ok", Storage: storageDriver},
		})
	})
}
