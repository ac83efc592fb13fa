package handler

import (
	"strings"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/resource"
)

type contactRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName"  validate:"required,min=1,max=50"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required,phone"`
	Address   string `json:"address"   validate:"max=200"`
	Company   string `json:"company"   validate:"max=100"`
	Notes     string `json:"notes"     validate:"max=500"`
}

type contactPatch struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Phone     *string `json:"phone"     validate:"omitempty,phone"`
	Address   *string `json:"address"   validate:"omitempty,max=200"`
	Company   *string `json:"company"   validate:"omitempty,max=100"`
	Notes     *string `json:"notes"     validate:"omitempty,max=500"`
}

// NewContactHandler instantiates the pipeline handler for contacts.
func NewContactHandler(svc *resource.Service[*domain.Contact]) *ResourceHandler[*domain.Contact, contactRequest, contactPatch] {
	return NewResourceHandler(svc, Mapper[*domain.Contact, contactRequest, contactPatch]{
		FromCreate: func(r *contactRequest) (*domain.Contact, error) {
			return &domain.Contact{
				FirstName: strings.TrimSpace(r.FirstName),
				LastName:  strings.TrimSpace(r.LastName),
				Email:     strings.TrimSpace(r.Email),
				Phone:     strings.TrimSpace(r.Phone),
				Address:   strings.TrimSpace(r.Address),
				Company:   strings.TrimSpace(r.Company),
				Notes:     strings.TrimSpace(r.Notes),
			}, nil
		},
		ApplyUpdate: func(r *contactPatch, c *domain.Contact) error {
			if r.FirstName != nil {
				c.FirstName = strings.TrimSpace(*r.FirstName)
			}
			if r.LastName != nil {
				c.LastName = strings.TrimSpace(*r.LastName)
			}
			if r.Email != nil {
				c.Email = strings.TrimSpace(*r.Email)
			}
			if r.Phone != nil {
				c.Phone = strings.TrimSpace(*r.Phone)
			}
			if r.Address != nil {
				c.Address = strings.TrimSpace(*r.Address)
			}
			if r.Company != nil {
				c.Company = strings.TrimSpace(*r.Company)
			}
			if r.Notes != nil {
				c.Notes = strings.TrimSpace(*r.Notes)
			}
			return nil
		},
	})
}
