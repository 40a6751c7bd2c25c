package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanblog/cleanblog/forms"
	"github.com/cleanblog/cleanblog/middleware"
	"github.com/cleanblog/cleanblog/models"
	"github.com/cleanblog/cleanblog/utils"
)

// postDateFormat matches the "Month DD, YYYY" strings stored with each post.
const postDateFormat = "January 02, 2006"

// maxCommentLength caps what the comments column stores.
const maxCommentLength = 500

// PostController manages the post and comment pages.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// Index renders all posts, newest first.
func (p *PostController) Index(ctx *gin.Context) {
	posts, err := models.PostsNewestFirst(p.db)
	if err != nil {
		serverError(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "index.html", gin.H{
		"Posts": posts,
	})
}

// Show renders a single post with its comments and the comment form.
func (p *PostController) Show(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}
	p.renderPost(ctx, http.StatusOK, post, forms.CommentForm{}, nil)
}

// CreateComment persists a comment by the authenticated user on the post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	var form forms.CommentForm
	if err := ctx.ShouldBind(&form); err != nil {
		p.renderPost(ctx, http.StatusOK, post, form, forms.FieldErrors(err))
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		// Guarded route; reaching here without identity is a wiring bug.
		ctx.String(http.StatusForbidden, "403 Forbidden")
		return
	}

	// Sanitizing entity-escapes text and can grow it, so the length cap is
	// enforced on what will actually be stored, not on the raw input.
	text := utils.Sanitize(form.Text)
	if utf8.RuneCountInString(text) > maxCommentLength {
		p.renderPost(ctx, http.StatusOK, post, form, map[string]string{
			"text": "Must be at most 500 characters.",
		})
		return
	}

	comment := models.Comment{
		AuthorID: userID,
		PostID:   post.ID,
		Text:     text,
	}
	if err := p.db.Create(&comment).Error; err != nil {
		serverError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// NewPostPage renders the empty authoring form.
func (p *PostController) NewPostPage(ctx *gin.Context) {
	render(ctx, http.StatusOK, "make-post.html", gin.H{
		"Form":   forms.PostForm{},
		"IsEdit": false,
	})
}

// CreatePost stores a new post dated today, authored by the session identity.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var form forms.PostForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusOK, "make-post.html", gin.H{
			"Form":   form,
			"IsEdit": false,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.String(http.StatusForbidden, "403 Forbidden")
		return
	}

	post := models.BlogPost{
		AuthorID: userID,
		Title:    strings.TrimSpace(form.Title),
		Subtitle: strings.TrimSpace(form.Subtitle),
		Date:     time.Now().Format(postDateFormat),
		Body:     utils.Sanitize(form.Body),
		ImgURL:   strings.TrimSpace(form.ImgURL),
	}
	if err := p.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SetFlash(ctx, "A post with that title already exists.")
			ctx.Redirect(http.StatusFound, "/new-post")
			return
		}
		serverError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// EditPostPage renders the authoring form pre-populated from the post.
func (p *PostController) EditPostPage(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}
	render(ctx, http.StatusOK, "make-post.html", gin.H{
		"Form": forms.PostForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImgURL:   post.ImgURL,
			Body:     post.Body,
		},
		"IsEdit": true,
		"PostID": post.ID,
	})
}

// UpdatePost rewrites every field except identity, author and date.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	var form forms.PostForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusOK, "make-post.html", gin.H{
			"Form":   form,
			"IsEdit": true,
			"PostID": post.ID,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	updates := map[string]interface{}{
		"title":    strings.TrimSpace(form.Title),
		"subtitle": strings.TrimSpace(form.Subtitle),
		"img_url":  strings.TrimSpace(form.ImgURL),
		"body":     utils.Sanitize(form.Body),
	}
	if err := p.db.Model(post).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SetFlash(ctx, "A post with that title already exists.")
			ctx.Redirect(http.StatusFound, fmt.Sprintf("/edit-post/%d", post.ID))
			return
		}
		serverError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// DeletePost removes a post together with its comments so no orphan rows remain.
func (p *PostController) DeletePost(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		serverError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// loadPost resolves the :id route parameter. On failure it has already
// written a 404/500 response and returns ok=false.
func (p *PostController) loadPost(ctx *gin.Context) (*models.BlogPost, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		notFound(ctx)
		return nil, false
	}
	post, err := models.PostByID(p.db, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx)
		} else {
			serverError(ctx, err)
		}
		return nil, false
	}
	return post, true
}

func (p *PostController) renderPost(ctx *gin.Context, status int, post *models.BlogPost, form forms.CommentForm, fieldErrors map[string]string) {
	comments, err := models.CommentsByPost(p.db, post.ID)
	if err != nil {
		serverError(ctx, err)
		return
	}
	render(ctx, status, "post.html", gin.H{
		"Post":     post,
		"Comments": comments,
		"Form":     form,
		"Errors":   fieldErrors,
	})
}
