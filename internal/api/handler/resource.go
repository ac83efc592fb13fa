package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/ports"
	"github.com/taskhub/records-api/internal/core/resource"
)

// Mapper converts bound transport payloads into domain records. C is the
// create request type, U the partial update type (pointer fields, so absent
// fields are left untouched).
type Mapper[T domain.Record[T], C any, U any] struct {
	FromCreate  func(*C) (T, error)
	ApplyUpdate func(*U, T) error
}

// ResourceHandler binds the five uniform HTTP operations of one resource to
// its pipeline service. One instantiation per resource replaces a
// hand-copied route file each.
type ResourceHandler[T domain.Record[T], C any, U any] struct {
	svc *resource.Service[T]
	m   Mapper[T, C, U]
}

func NewResourceHandler[T domain.Record[T], C any, U any](svc *resource.Service[T], m Mapper[T, C, U]) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{svc: svc, m: m}
}

// List handles GET /api/<resource> with search, sort, and pagination
// query parameters.
func (h *ResourceHandler[T, C, U]) List(c echo.Context) error {
	q := ports.ListQuery{
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	items, page, err := h.svc.List(c.Request().Context(), q, principalFrom(c))
	if err != nil {
		return err
	}

	return respondOK(c,
		fmt.Sprintf("%s retrieved successfully", titled(h.svc.Plural())),
		echo.Map{h.svc.Plural(): items, "pagination": page},
	)
}

// Get handles GET /api/<resource>/:id.
func (h *ResourceHandler[T, C, U]) Get(c echo.Context) error {
	rec, err := h.svc.Get(c.Request().Context(), c.Param("id"), principalFrom(c))
	if err != nil {
		return err
	}
	return respondOK(c,
		fmt.Sprintf("%s retrieved successfully", titled(h.svc.Name())),
		echo.Map{h.svc.Name(): rec},
	)
}

// Create handles POST /api/<resource>.
func (h *ResourceHandler[T, C, U]) Create(c echo.Context) error {
	var req C
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rec, err := h.m.FromCreate(&req)
	if err != nil {
		return err
	}

	created, err := h.svc.Create(c.Request().Context(), rec, principalFrom(c))
	if err != nil {
		return err
	}
	return respondCreated(c,
		fmt.Sprintf("%s created successfully", titled(h.svc.Name())),
		echo.Map{h.svc.Name(): created},
	)
}

// Update handles PUT /api/<resource>/:id with a partial payload.
func (h *ResourceHandler[T, C, U]) Update(c echo.Context) error {
	var req U
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), principalFrom(c), func(rec T) error {
		return h.m.ApplyUpdate(&req, rec)
	})
	if err != nil {
		return err
	}
	return respondOK(c,
		fmt.Sprintf("%s updated successfully", titled(h.svc.Name())),
		echo.Map{h.svc.Name(): updated},
	)
}

// Delete handles DELETE /api/<resource>/:id, confirming with the removed
// record and the remaining count.
func (h *ResourceHandler[T, C, U]) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	removed, err := h.svc.Delete(ctx, c.Param("id"), principalFrom(c))
	if err != nil {
		return err
	}

	remaining, err := h.svc.Store().Count(ctx, "")
	if err != nil {
		remaining = -1 // deletion already succeeded; report it anyway
	}
	return respondOK(c,
		fmt.Sprintf("%s deleted successfully", titled(h.svc.Name())),
		echo.Map{"deleted": removed, "remaining": remaining},
	)
}
