// Package objects builds the JSON objects returned by the API.
package objects

import (
	"time"

	"github.com/yatube/yatube/internal/media"
	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/paginator"
)

// Serializer turns models into API objects
type Serializer struct {
	images *media.Storage
}

// NewSerializer creates a serializer resolving image URLs through images
func NewSerializer(images *media.Storage) *Serializer {
	return &Serializer{images: images}
}

// Post builds a post object
func (s *Serializer) Post(post *models.Post) map[string]interface{} {
	postObj := map[string]interface{}{
		"id":       post.ID,
		"text":     post.Text,
		"pub_date": post.PubDate.UTC().Format(time.RFC3339),
		"author":   nil,
		"group":    nil,
		"image":    nil,
	}
	if post.Author != nil {
		postObj["author"] = post.Author.Username
	}
	if post.Group != nil {
		postObj["group"] = post.Group.Slug
	}
	if post.Image != "" {
		postObj["image"] = s.images.URL(post.Image)
	}
	return postObj
}

// Posts builds post objects in order
func (s *Serializer) Posts(posts []*models.Post) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		result = append(result, s.Post(post))
	}
	return result
}

// Comment builds a comment object
func Comment(comment *models.Comment) map[string]interface{} {
	commentObj := map[string]interface{}{
		"id":      comment.ID,
		"post":    comment.PostID,
		"text":    comment.Text,
		"created": comment.Created.UTC().Format(time.RFC3339),
		"author":  nil,
	}
	if comment.Author != nil {
		commentObj["author"] = comment.Author.Username
	}
	return commentObj
}

// Comments builds comment objects in order
func Comments(comments []*models.Comment) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(comments))
	for _, comment := range comments {
		result = append(result, Comment(comment))
	}
	return result
}

// Group builds a group object
func Group(group *models.Group) map[string]interface{} {
	return map[string]interface{}{
		"id":          group.ID,
		"title":       group.Title,
		"slug":        group.Slug,
		"description": group.Description,
	}
}

// PostPage builds a paginated post listing
func (s *Serializer) PostPage(page paginator.PageOf[*models.Post]) map[string]interface{} {
	return map[string]interface{}{
		"count":     page.Total,
		"page":      page.Number,
		"num_pages": page.NumPages,
		"results":   s.Posts(page.Items),
	}
}
