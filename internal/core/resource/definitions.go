package resource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/ports"
)

// The four resource declarations. Each one parameterizes the same pipeline;
// nothing else about a resource lives outside its Definition, its entity
// type, and its transport DTOs.

func Contacts() Definition[*domain.Contact] {
	return Definition[*domain.Contact]{
		Name:        "contact",
		Plural:      "contacts",
		New:         func() *domain.Contact { return &domain.Contact{} },
		Owned:       true,
		UniqueKey:   func(c *domain.Contact) string { return c.Email },
		UniqueField: "email",
		SearchFields: []string{
			"first_name", "last_name", "email", "phone", "company",
		},
		SearchText: func(c *domain.Contact) []string {
			return []string{c.FirstName, c.LastName, c.Email, c.Phone, c.Company}
		},
		SortValue: func(c *domain.Contact, key string) string {
			switch key {
			case "firstName":
				return c.FirstName
			case "lastName":
				return c.LastName
			case "email":
				return c.Email
			case "company":
				return c.Company
			case "createdAt":
				return sortableTime(c.CreatedAt)
			}
			return ""
		},
		SortFieldMap: map[string]string{
			"firstName": "first_name",
			"lastName":  "last_name",
			"email":     "email",
			"company":   "company",
			"createdAt": "created_at",
		},
		DefaultSortBy: "firstName",
	}
}

func Posts() Definition[*domain.Post] {
	return Definition[*domain.Post]{
		Name:         "post",
		Plural:       "posts",
		New:          func() *domain.Post { return &domain.Post{} },
		Owned:        true,
		SearchFields: []string{"title", "content", "category"},
		SearchText: func(p *domain.Post) []string {
			return []string{p.Title, p.Content, p.Category}
		},
		SortValue: func(p *domain.Post, key string) string {
			switch key {
			case "title":
				return p.Title
			case "category":
				return p.Category
			case "createdAt":
				return sortableTime(p.CreatedAt)
			}
			return ""
		},
		SortFieldMap: map[string]string{
			"title":     "title",
			"category":  "category",
			"createdAt": "created_at",
		},
		DefaultSortBy:    "createdAt",
		DefaultSortOrder: "desc",
		OnRead:           func(p *domain.Post) { p.Views++ },
	}
}

// Comments verifies the parent post on create, rejecting dangling references.
func Comments(posts ports.Store[*domain.Post]) Definition[*domain.Comment] {
	return Definition[*domain.Comment]{
		Name:         "comment",
		Plural:       "comments",
		New:          func() *domain.Comment { return &domain.Comment{} },
		Owned:        true,
		SearchFields: []string{"content"},
		SearchText: func(c *domain.Comment) []string {
			return []string{c.Content}
		},
		SortValue: func(c *domain.Comment, key string) string {
			if key == "createdAt" {
				return sortableTime(c.CreatedAt)
			}
			return ""
		},
		SortFieldMap:     map[string]string{"createdAt": "created_at"},
		DefaultSortBy:    "createdAt",
		DefaultSortOrder: "desc",
		BeforeCreate: func(ctx context.Context, c *domain.Comment) error {
			if _, err := posts.FindByID(ctx, c.PostID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("no post exists with ID %q: %w", c.PostID, domain.ErrNotFound)
				}
				return err
			}
			return nil
		},
	}
}

func Users() Definition[*domain.User] {
	return Definition[*domain.User]{
		Name:         "user",
		Plural:       "users",
		New:          func() *domain.User { return &domain.User{} },
		Owned:        false,
		AdminDelete:  true,
		UniqueKey:    func(u *domain.User) string { return u.Email },
		UniqueField:  "email",
		SearchFields: []string{"name", "email"},
		SearchText: func(u *domain.User) []string {
			return []string{u.Name, u.Email}
		},
		SortValue: func(u *domain.User, key string) string {
			switch key {
			case "name":
				return u.Name
			case "email":
				return u.Email
			case "age":
				return fmt.Sprintf("%03d", u.Age)
			case "createdAt":
				return sortableTime(u.CreatedAt)
			}
			return ""
		},
		SortFieldMap: map[string]string{
			"name":      "name",
			"email":     "email",
			"age":       "age",
			"createdAt": "created_at",
		},
		DefaultSortBy: "name",
	}
}

// sortableTime renders a timestamp fixed-width so lexicographic order equals
// time order (RFC3339Nano trims trailing zeros and would not sort).
func sortableTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000")
}
