package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"student-chapter-system/internal/logger"
	"student-chapter-system/services"
	"student-chapter-system/utils"
)

// SetupContentRoutes registers the unit listing, page listing, chapter text
// and health endpoints.
func SetupContentRoutes(router *gin.Engine, content *services.ContentService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/units", func(c *gin.Context) {
		units, err := content.ListUnits(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list units", "error", err)
			utils.RespondWithInternalError(c, "Failed to list units", nil)
			return
		}
		c.JSON(http.StatusOK, units)
	})

	router.GET("/unit-pages/:unit_id", func(c *gin.Context) {
		unitID, ok := unitIDParam(c)
		if !ok {
			return
		}

		pages, err := content.UnitPages(c.Request.Context(), unitID)
		if err != nil {
			respondWithServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, pages)
	})

	// The audio endpoint returns the raw chapter text; synthesis happens on
	// the client.
	router.GET("/chapter-audio/:unit_id", func(c *gin.Context) {
		unitID, ok := unitIDParam(c)
		if !ok {
			return
		}

		text, err := content.UnitText(c.Request.Context(), unitID)
		if err != nil {
			respondWithServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"unit_id": unitID, "text": text})
	})
}

// unitIDParam parses the :unit_id path parameter, answering 400 on garbage.
func unitIDParam(c *gin.Context) (int, bool) {
	unitID, err := strconv.Atoi(c.Param("unit_id"))
	if err != nil {
		utils.RespondWithBadRequest(c, "Invalid unit id")
		return 0, false
	}
	return unitID, true
}

// respondWithServiceError maps service errors onto the HTTP error envelope.
func respondWithServiceError(c *gin.Context, err error) {
	var parseErr *services.ParseError

	switch {
	case errors.Is(err, services.ErrUnitNotFound):
		utils.RespondWithNotFound(c, services.ErrUnitNotFound.Error())
	case errors.Is(err, services.ErrNoUnitText):
		utils.RespondWithBadRequest(c, services.ErrNoUnitText.Error())
	case errors.Is(err, services.ErrMissingAPIKey):
		utils.RespondWithInternalError(c, services.ErrMissingAPIKey.Error(), nil)
	case errors.As(err, &parseErr):
		utils.RespondWithInternalError(c, parseErr.Error(), nil)
	default:
		logger.Error("Unhandled service error", "error", err)
		utils.RespondWithInternalError(c, "Internal server error", nil)
	}
}
