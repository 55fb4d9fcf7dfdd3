package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dondigital/storefront/internal/services"
)

// CreateCommentRequest is the JSON body of POST /comments.
type CreateCommentRequest struct {
	CommentText string `json:"commentText"`
}

// ListCommentsHandler serves GET /comments: the latest 50, newest first.
func ListCommentsHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := svc.LatestComments()
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, comments)
	}
}

// CreateCommentHandler serves POST /comments.
func CreateCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		comment, err := svc.PostComment(req.CommentText)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, comment)
	}
}

// DeleteCommentHandler serves DELETE /comments?id=. Deleting an id that no
// longer exists still reports success.
func DeleteCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Query("id")
		if idParam == "" {
			respondValidation(c, "Comment ID is required")
			return
		}
		id, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil {
			respondValidation(c, "Comment ID must be numeric")
			return
		}

		if err := svc.DeleteComment(uint(id)); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Comment deleted successfully")
	}
}
