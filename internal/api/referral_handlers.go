package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/services"
)

// TrackClickRequest is the JSON body of POST /referrals/track-click.
type TrackClickRequest struct {
	ReferralCode string `json:"referralCode"`
}

// TrackConversionRequest is the JSON body of POST /referrals/track-conversion.
type TrackConversionRequest struct {
	ReferralCode string  `json:"referralCode"`
	RobuxAmount  float64 `json:"robuxAmount"`
	PriceAmount  float64 `json:"priceAmount"`
}

// TrackClickHandler serves POST /referrals/track-click. Once the code has
// been validated the click event is queued for the worker pool and the
// handler reports success: click tracking is best-effort and must never
// block the storefront. A full buffer drops the event with a log line.
func TrackClickHandler(svc *services.ReferralService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrackClickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		code := strings.TrimSpace(req.ReferralCode)
		if code == "" {
			respondValidation(c, "Referral code is required")
			return
		}

		if _, err := svc.LookupForClick(code); err != nil {
			respondError(c, err)
			return
		}

		event := models.ClickEvent{
			ReferralCode: code,
			ClickedAt:    time.Now(),
		}
		select {
		case ClickEventsChannel <- event:
		default:
			log.Printf("WARNING: click events channel is full, dropping click for code %s", code)
		}

		respondMessage(c, http.StatusOK, "Click tracked successfully")
	}
}

// TrackConversionHandler serves POST /referrals/track-conversion. Unlike
// click tracking, a failed conversion insert is surfaced: a lost conversion
// record means lost commission accounting.
func TrackConversionHandler(svc *services.ReferralService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrackConversionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		code := strings.TrimSpace(req.ReferralCode)
		if code == "" {
			respondValidation(c, "Referral code is required")
			return
		}
		if req.RobuxAmount <= 0 {
			respondValidation(c, "Valid robuxAmount is required")
			return
		}
		if req.PriceAmount <= 0 {
			respondValidation(c, "Valid priceAmount is required")
			return
		}

		conversion, err := svc.RecordConversion(code, req.RobuxAmount, req.PriceAmount, clientIP(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondDataMessage(c, http.StatusCreated, conversion, "Conversion tracked successfully")
	}
}

// ValidateReferralHandler serves GET /referrals/validate?code=. Unknown and
// inactive codes are a normal valid:false answer with HTTP 200, never an
// error.
func ValidateReferralHandler(svc *services.ReferralService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.TrimSpace(c.Query("code"))
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"valid":   false,
				"error":   "Referral code is required",
			})
			return
		}

		result, err := svc.Validate(code)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, validateResponse{Success: true, ValidationResult: result})
	}
}

// validateResponse flattens the validation result into the standard
// envelope; reason and username are omitted when empty.
type validateResponse struct {
	Success bool `json:"success"`
	services.ValidationResult
}

// GetFacebookProfileHandler serves GET /referrals/facebook?code=, returning
// the affiliator's Facebook profile link for active codes.
func GetFacebookProfileHandler(svc *services.ReferralService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.TrimSpace(c.Query("code"))
		if code == "" {
			respondValidation(c, "Referral code required")
			return
		}

		profile, err := svc.FacebookProfile(code)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"facebook_profile": profile,
		})
	}
}
