package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"conduit/internal/errors"
	"conduit/internal/service"
)

// TagHandler handles the tag catalog endpoint.
type TagHandler struct {
	tags service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List godoc
// @Summary List all tags
// @Tags tags
// @Produce json
// @Success 200 {object} TagsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.tags.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, TagsResponse{Tags: tags})
}
