package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/nabnoey/TK-libralies-System/internal/auth"
	"github.com/nabnoey/TK-libralies-System/internal/config"
	"github.com/nabnoey/TK-libralies-System/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	identity echo.MiddlewareFunc,
	reservationHandler *handler.ReservationHandler,
	notificationHandler *handler.NotificationHandler,
	resourceHandler *handler.ResourceHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes: the registry and the status boards are readable
	// without signing in.
	api.GET("/rooms", resourceHandler.ListKaraokeRooms)
	api.GET("/seats", resourceHandler.ListMovieSeats)
	api.GET("/reservations/karaoke-status", resourceHandler.KaraokeStatusBoard)
	api.GET("/reservations/movie-status", resourceHandler.MovieStatusBoard)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), identity)

	secured.GET("/me", func(c echo.Context) error {
		id, ok := auth.CurrentIdentity(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return c.JSON(http.StatusOK, id)
	})

	// Reservation routes
	secured.POST("/reservations", reservationHandler.Create)
	secured.GET("/reservations/mine", reservationHandler.ListMine)
	secured.GET("/reservations/:id", reservationHandler.Get)
	secured.PATCH("/reservations/:id/checkin", reservationHandler.CheckIn)
	secured.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)

	// Notification routes
	secured.GET("/notifications", notificationHandler.List)
	secured.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)
	secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
	secured.DELETE("/notifications/:id", notificationHandler.Delete)

	// Operator routes
	admin := secured.Group("", auth.RequireAdmin())
	admin.GET("/reservations", reservationHandler.ListAll)
	admin.PATCH("/reservations/:id/status", reservationHandler.UpdateStatus)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
