package models

import (
	"gorm.io/gorm"
)

// Comment is a reply attached to a post.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"index;not null" json:"author_id"`
	PostID   uint   `gorm:"index;not null" json:"post_id"`
	Text     string `gorm:"size:500;not null" json:"text"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// CommentsByPost returns the comments on a post in creation order, authors preloaded.
func CommentsByPost(db *gorm.DB, postID uint) ([]Comment, error) {
	var comments []Comment
	if err := db.Where("post_id = ?", postID).Preload("Author").Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
