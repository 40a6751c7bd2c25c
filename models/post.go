package models

import (
	"gorm.io/gorm"
)

// BlogPost is a published article. Date keeps the rendered "Month DD, YYYY"
// form the views expect rather than a timestamp.
type BlogPost struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"index;not null" json:"author_id"`
	Title    string `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Subtitle string `gorm:"size:250;not null" json:"subtitle"`
	Date     string `gorm:"size:250;not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImgURL   string `gorm:"size:250;not null" json:"img_url"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// TableName keeps the historical table name.
func (BlogPost) TableName() string { return "blog_posts" }

// PostsNewestFirst returns all posts ordered by descending identity, authors preloaded.
func PostsNewestFirst(db *gorm.DB) ([]BlogPost, error) {
	var posts []BlogPost
	if err := db.Preload("Author").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// PostByID fetches a single post with its author.
func PostByID(db *gorm.DB, id uint) (*BlogPost, error) {
	var post BlogPost
	if err := db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// PostsByAuthor returns the posts created by one user, newest first.
func PostsByAuthor(db *gorm.DB, authorID uint) ([]BlogPost, error) {
	var posts []BlogPost
	if err := db.Where("author_id = ?", authorID).Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
