package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	customerrors "github.com/dondigital/storefront/internal/errors"
)

// Every endpoint answers with the same envelope: {success, data?, error?,
// message?}. These helpers keep the shaping in one place.

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondDataMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{"success": true, "data": data, "message": message})
}

func respondValidation(c *gin.Context, reason string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": reason})
}

// respondError maps service errors onto the HTTP statuses of the API
// contract. Validation and conflict map to 400, absence to 404, inactive
// referral codes to 403. Everything else is a 500 carrying the raw error
// message; callers rely on seeing the backend detail.
func respondError(c *gin.Context, err error) {
	var validation customerrors.ValidationError
	switch {
	case errors.As(err, &validation):
		respondValidation(c, validation.Reason)
	case errors.Is(err, customerrors.ErrAffiliatorExists),
		errors.Is(err, customerrors.ErrUsernameTaken),
		errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, customerrors.ErrAffiliatorNotFound),
		errors.Is(err, customerrors.ErrReferralCodeNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, customerrors.ErrReferralCodeInactive):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
