package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"conduit/internal/errors"
	"conduit/internal/middleware"
	"conduit/internal/service"
)

// ArticleHandler handles article endpoints.
type ArticleHandler struct {
	articles service.ArticleService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articles service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// CreateArticleRequest is the article creation envelope.
type CreateArticleRequest struct {
	Article struct {
		Title       string   `json:"title" validate:"required"`
		Description string   `json:"description"`
		Body        string   `json:"body" validate:"required"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

// UpdateArticleRequest is the article update envelope. Absent fields are
// left untouched.
type UpdateArticleRequest struct {
	Article struct {
		Title       *string  `json:"title" validate:"omitempty,min=1"`
		Description *string  `json:"description"`
		Body        *string  `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

// DeleteArticleResponse reports a completed deletion.
type DeleteArticleResponse struct {
	Slug    string `json:"slug"`
	Deleted bool   `json:"deleted"`
}

// List godoc
// @Summary List articles
// @Description Filtered, paginated listing ordered by creation time descending.
// @Tags articles
// @Produce json
// @Param author query string false "Filter by author username"
// @Param tag query string false "Filter by tag"
// @Param favorited query string false "Filter by favoriting username"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ArticlesResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	query := service.ListQuery{
		Author:    c.QueryParam("author"),
		Tag:       c.QueryParam("tag"),
		Favorited: c.QueryParam("favorited"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		query.Limit = &limit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset")
		}
		query.Offset = &offset
	}

	articles, total, err := h.articles.List(c.Request().Context(), query)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	payloads := make([]ArticlePayload, 0, len(articles))
	for i := range articles {
		payloads = append(payloads, buildArticlePayload(&articles[i]))
	}
	return c.JSON(http.StatusOK, ArticlesResponse{
		Articles:      payloads,
		ArticlesCount: total,
	})
}

// Create godoc
// @Summary Create an article
// @Tags articles
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body CreateArticleRequest true "Article fields"
// @Success 201 {object} ArticleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _ := middleware.CurrentUserID(c)
	article, err := h.articles.Create(c.Request().Context(), userID, service.ArticleInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		TagList:     req.Article.TagList,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, buildArticleResponse(article))
}

// Get godoc
// @Summary Get an article by slug
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} ArticleResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles/{slug} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.articles.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, buildArticleResponse(article))
}

// Update godoc
// @Summary Update an owned article
// @Tags articles
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param slug path string true "Article slug"
// @Param request body UpdateArticleRequest true "Article fields"
// @Success 200 {object} ArticleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles/{slug} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	var req UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _ := middleware.CurrentUserID(c)
	article, err := h.articles.Update(c.Request().Context(), c.Param("slug"), service.ArticleUpdate{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		TagList:     req.Article.TagList,
	}, userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, buildArticleResponse(article))
}

// Delete godoc
// @Summary Delete an owned article
// @Tags articles
// @Produce json
// @Security TokenAuth
// @Param slug path string true "Article slug"
// @Success 200 {object} DeleteArticleResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles/{slug} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	slug := c.Param("slug")
	userID, _ := middleware.CurrentUserID(c)
	if err := h.articles.Delete(c.Request().Context(), slug, userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, DeleteArticleResponse{Slug: slug, Deleted: true})
}

// Favorite godoc
// @Summary Favorite an article
// @Tags articles
// @Produce json
// @Security TokenAuth
// @Param slug path string true "Article slug"
// @Success 200 {object} ArticleResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles/{slug}/favorite [post]
func (h *ArticleHandler) Favorite(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)
	article, err := h.articles.Favorite(c.Request().Context(), c.Param("slug"), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, buildArticleResponse(article))
}

// Unfavorite godoc
// @Summary Remove an article from favorites
// @Tags articles
// @Produce json
// @Security TokenAuth
// @Param slug path string true "Article slug"
// @Success 200 {object} ArticleResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles/{slug}/favorite [delete]
func (h *ArticleHandler) Unfavorite(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)
	article, err := h.articles.Unfavorite(c.Request().Context(), c.Param("slug"), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, buildArticleResponse(article))
}
