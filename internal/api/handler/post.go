package handler

import (
	"strings"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/resource"
)

const excerptLength = 150

type postRequest struct {
	Title     string   `json:"title"    validate:"required,max=200"`
	Content   string   `json:"content"  validate:"required"`
	Excerpt   string   `json:"excerpt"  validate:"max=300"`
	Category  string   `json:"category" validate:"omitempty,oneof=Technology Lifestyle Travel Food Health Business General"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

type postPatch struct {
	Title     *string  `json:"title"    validate:"omitempty,max=200"`
	Content   *string  `json:"content"  validate:"omitempty,min=1"`
	Excerpt   *string  `json:"excerpt"  validate:"omitempty,max=300"`
	Category  *string  `json:"category" validate:"omitempty,oneof=Technology Lifestyle Travel Food Health Business General"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

// NewPostHandler instantiates the pipeline handler for posts. An empty
// excerpt defaults to the leading content; an empty category to General;
// published to true.
func NewPostHandler(svc *resource.Service[*domain.Post]) *ResourceHandler[*domain.Post, postRequest, postPatch] {
	return NewResourceHandler(svc, Mapper[*domain.Post, postRequest, postPatch]{
		FromCreate: func(r *postRequest) (*domain.Post, error) {
			p := &domain.Post{
				Title:     strings.TrimSpace(r.Title),
				Content:   r.Content,
				Excerpt:   strings.TrimSpace(r.Excerpt),
				Category:  r.Category,
				Tags:      trimTags(r.Tags),
				Published: true,
			}
			if p.Excerpt == "" {
				p.Excerpt = excerptOf(p.Content)
			}
			if p.Category == "" {
				p.Category = "General"
			}
			if r.Published != nil {
				p.Published = *r.Published
			}
			return p, nil
		},
		ApplyUpdate: func(r *postPatch, p *domain.Post) error {
			if r.Title != nil {
				p.Title = strings.TrimSpace(*r.Title)
			}
			if r.Content != nil {
				p.Content = *r.Content
			}
			if r.Excerpt != nil {
				p.Excerpt = strings.TrimSpace(*r.Excerpt)
			}
			if r.Category != nil {
				p.Category = *r.Category
			}
			if r.Tags != nil {
				p.Tags = trimTags(r.Tags)
			}
			if r.Published != nil {
				p.Published = *r.Published
			}
			return nil
		},
	})
}

func excerptOf(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength])
}

func trimTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
