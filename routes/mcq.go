package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"student-chapter-system/services"
)

// SetupMCQRoutes registers the MCQ generation endpoint.
func SetupMCQRoutes(router *gin.Engine, mcq *services.MCQService) {
	// Previously generated questions for a unit, oldest first.
	router.GET("/unit-mcqs/:unit_id", func(c *gin.Context) {
		unitID, ok := unitIDParam(c)
		if !ok {
			return
		}

		questions, err := mcq.ListForUnit(c.Request.Context(), unitID)
		if err != nil {
			respondWithServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, questions)
	})

	router.GET("/generate-mcq/:unit_id", func(c *gin.Context) {
		unitID, ok := unitIDParam(c)
		if !ok {
			return
		}

		result, err := mcq.GenerateForUnit(c.Request.Context(), unitID)
		if err != nil {
			respondWithServiceError(c, err)
			return
		}

		// Count reflects parsed questions; failed inserts are logged by the
		// service, not subtracted here.
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"count":  result.Count,
			"mcqs":   result.MCQs,
		})
	})
}
