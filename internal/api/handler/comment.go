package handler

import (
	"strings"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/resource"
)

type commentRequest struct {
	PostID  string `json:"postId"  validate:"required"`
	Content string `json:"content" validate:"required,max=1000"`
}

type commentPatch struct {
	Content *string `json:"content" validate:"omitempty,min=1,max=1000"`
}

// NewCommentHandler instantiates the pipeline handler for comments. The
// parent post reference is immutable after creation.
func NewCommentHandler(svc *resource.Service[*domain.Comment]) *ResourceHandler[*domain.Comment, commentRequest, commentPatch] {
	return NewResourceHandler(svc, Mapper[*domain.Comment, commentRequest, commentPatch]{
		FromCreate: func(r *commentRequest) (*domain.Comment, error) {
			return &domain.Comment{
				PostID:  strings.TrimSpace(r.PostID),
				Content: strings.TrimSpace(r.Content),
			}, nil
		},
		ApplyUpdate: func(r *commentPatch, c *domain.Comment) error {
			if r.Content != nil {
				c.Content = strings.TrimSpace(*r.Content)
			}
			return nil
		},
	})
}
