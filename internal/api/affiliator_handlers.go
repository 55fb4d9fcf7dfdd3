package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dondigital/storefront/internal/services"
)

// CreateAffiliatorRequest is the JSON body of POST /affiliators. RobuxEarned
// is a pointer so a missing field can be told apart from an explicit zero.
type CreateAffiliatorRequest struct {
	Username       string   `json:"username"`
	RobuxEarned    *float64 `json:"robux_earned"`
	CreateReferral bool     `json:"create_referral"`
}

// UpdateAffiliatorRequest is the JSON body of PUT /affiliators. When
// SetActive is present only the active flag is toggled; otherwise
// RobuxEarned overwrites both earnings counters.
type UpdateAffiliatorRequest struct {
	Username    string   `json:"username"`
	RobuxEarned *float64 `json:"robux_earned"`
	SetActive   *bool    `json:"set_active"`
}

// ListAffiliatorsHandler serves GET /affiliators: the legacy top-20 listing
// by earnings, or the pre-aggregated leaderboard when ?view=leaderboard.
func ListAffiliatorsHandler(svc *services.AffiliatorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("view") == "leaderboard" {
			limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
			if err != nil {
				limit = 20
			}
			entries, err := svc.Leaderboard(limit)
			if err != nil {
				respondError(c, err)
				return
			}
			respondData(c, http.StatusOK, entries)
			return
		}

		affiliators, err := svc.TopAffiliators()
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, affiliators)
	}
}

// CreateAffiliatorHandler serves POST /affiliators. With create_referral the
// username gets a generated referral code and duplicates are rejected;
// without it the request is the legacy additive upsert.
func CreateAffiliatorHandler(svc *services.AffiliatorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAffiliatorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		username := strings.TrimSpace(req.Username)
		if username == "" {
			respondValidation(c, "Username is required")
			return
		}
		if req.RobuxEarned == nil || *req.RobuxEarned < 0 {
			respondValidation(c, "Valid robux_earned amount is required")
			return
		}

		if req.CreateReferral {
			affiliator, link, err := svc.CreateWithReferral(username, *req.RobuxEarned)
			if err != nil {
				respondError(c, err)
				return
			}
			respondDataMessage(c, http.StatusCreated, gin.H{
				"username":      affiliator.Username,
				"referral_code": affiliator.ReferralCode,
				"robux_earned":  affiliator.TotalRobuxEarned,
				"referral_link": link,
			}, "Affiliator created with referral system")
			return
		}

		affiliator, created, err := svc.RegisterEarnings(username, *req.RobuxEarned)
		if err != nil {
			respondError(c, err)
			return
		}
		if created {
			respondDataMessage(c, http.StatusCreated, affiliator, "Affiliator created successfully")
			return
		}
		respondDataMessage(c, http.StatusOK, affiliator, "Affiliator updated successfully")
	}
}

// UpdateAffiliatorHandler serves PUT /affiliators.
func UpdateAffiliatorHandler(svc *services.AffiliatorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateAffiliatorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		username := strings.TrimSpace(req.Username)
		if username == "" {
			respondValidation(c, "Username is required")
			return
		}

		if req.SetActive != nil {
			affiliator, err := svc.SetActive(username, *req.SetActive)
			if err != nil {
				respondError(c, err)
				return
			}
			verb := "deactivated"
			if *req.SetActive {
				verb = "activated"
			}
			respondDataMessage(c, http.StatusOK, affiliator, "Affiliator "+verb+" successfully")
			return
		}

		if req.RobuxEarned == nil || *req.RobuxEarned < 0 {
			respondValidation(c, "Valid robux_earned amount is required")
			return
		}

		affiliator, err := svc.SetEarnings(username, *req.RobuxEarned)
		if err != nil {
			respondError(c, err)
			return
		}
		respondDataMessage(c, http.StatusOK, affiliator, "Affiliator robux set successfully")
	}
}

// DeleteAffiliatorHandler serves DELETE /affiliators?username=.
func DeleteAffiliatorHandler(svc *services.AffiliatorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			respondValidation(c, "Username is required")
			return
		}
		if err := svc.Delete(username); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Affiliator deleted successfully")
	}
}
