package handler

import (
	"strings"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/resource"
	"github.com/taskhub/records-api/internal/core/service"
)

type userRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Age      int    `json:"age"      validate:"required,gte=13,lte=120"`
	Password string `json:"password" validate:"required,min=8,password"`
}

type userPatch struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Age      *int    `json:"age"      validate:"omitempty,gte=13,lte=120"`
	Password *string `json:"password" validate:"omitempty,min=8,password"`
}

// NewUserHandler instantiates the pipeline handler for users. Passwords are
// hashed before the record reaches the store and never serialize back.
func NewUserHandler(svc *resource.Service[*domain.User]) *ResourceHandler[*domain.User, userRequest, userPatch] {
	return NewResourceHandler(svc, Mapper[*domain.User, userRequest, userPatch]{
		FromCreate:  userFromRequest,
		ApplyUpdate: applyUserPatch,
	})
}

func userFromRequest(r *userRequest) (*domain.User, error) {
	hash, err := service.HashPassword(r.Password)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.TrimSpace(r.Email),
		Age:          r.Age,
		Role:         domain.RoleUser,
		PasswordHash: hash,
	}, nil
}

func applyUserPatch(r *userPatch, u *domain.User) error {
	if r.Name != nil {
		u.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		u.Email = strings.TrimSpace(*r.Email)
	}
	if r.Age != nil {
		u.Age = *r.Age
	}
	if r.Password != nil {
		hash, err := service.HashPassword(*r.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	return nil
}
