package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"conduit/internal/auth"
	"conduit/internal/handler"
	"conduit/internal/middleware"
	"conduit/internal/service"
)

// Register wires routes and middleware. Identity resolution runs for every
// /api route; RequireUser gates the routes that need an authenticated caller.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userService service.UserService,
	userHandler *handler.UserHandler,
	articleHandler *handler.ArticleHandler,
	tagHandler *handler.TagHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", middleware.ResolveUser(jwtService, userService))

	// Users
	api.POST("/users", userHandler.Register)
	api.POST("/users/login", userHandler.Login)
	api.GET("/user", userHandler.Current, middleware.RequireUser)
	api.PUT("/user", userHandler.Update, middleware.RequireUser)

	// Articles
	api.GET("/articles", articleHandler.List)
	api.POST("/articles", articleHandler.Create, middleware.RequireUser)
	api.GET("/articles/:slug", articleHandler.Get)
	api.PUT("/articles/:slug", articleHandler.Update, middleware.RequireUser)
	api.DELETE("/articles/:slug", articleHandler.Delete, middleware.RequireUser)
	api.POST("/articles/:slug/favorite", articleHandler.Favorite, middleware.RequireUser)
	api.DELETE("/articles/:slug/favorite", articleHandler.Unfavorite, middleware.RequireUser)

	// Tags
	api.GET("/tags", tagHandler.List)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
