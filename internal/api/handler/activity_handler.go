package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/records-api/internal/core/service"
)

// ActivityHandler serves the mutation audit trail (admin only).
type ActivityHandler struct {
	svc *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// List handles GET /api/activity?limit=n, newest entries first.
//
// @Summary      List recent record activity
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries to return (default 50)"
// @Success      200    {object}  envelope
// @Failure      401    {object}  envelope
// @Failure      403    {object}  envelope
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.svc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return respondOK(c, "Activity retrieved successfully", echo.Map{"activity": entries})
}
