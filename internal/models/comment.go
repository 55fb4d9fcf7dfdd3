package models

import "time"

// MaxCommentLength is the longest comment the board accepts, in characters.
const MaxCommentLength = 200

// Comment is a short public message on the storefront comment board.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CommentText string    `gorm:"size:200;not null" json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
