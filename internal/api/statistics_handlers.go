package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dondigital/storefront/internal/services"
)

// UpdateStatisticsRequest is the JSON body of PUT /statistics. All three
// fields are overwritten unconditionally, matching the admin dashboard's
// save-everything behavior.
type UpdateStatisticsRequest struct {
	CurrentRobux        int    `json:"currentRobux"`
	OperatingHoursStart string `json:"operatingHoursStart"`
	OperatingHoursEnd   string `json:"operatingHoursEnd"`
}

// GetStatisticsHandler serves GET /statistics.
func GetStatisticsHandler(svc *services.StatisticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Get()
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, stats)
	}
}

// UpdateStatisticsHandler serves PUT /statistics.
func UpdateStatisticsHandler(svc *services.StatisticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatisticsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		stats, err := svc.Update(req.CurrentRobux, req.OperatingHoursStart, req.OperatingHoursEnd)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, stats)
	}
}
