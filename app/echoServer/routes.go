package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "github.com/RazvanV12/BookStoreAPI/app/echoServer/controller/auth"
	catalogctrl "github.com/RazvanV12/BookStoreAPI/app/echoServer/controller/catalog"
	orderctrl "github.com/RazvanV12/BookStoreAPI/app/echoServer/controller/order"
	rentalctrl "github.com/RazvanV12/BookStoreAPI/app/echoServer/controller/rental"
	"github.com/RazvanV12/BookStoreAPI/app/echoServer/jwtx"
)

type C struct {
	Auth    *authctrl.Controller
	Catalog *catalogctrl.Controller
	Order   *orderctrl.Controller
	Rental  *rentalctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			return next(ctx)
		}
	})

	// Catalog
	auth.GET("/books", c.Catalog.List)
	auth.GET("/books/:id", c.Catalog.Detail)
	auth.GET("/books/:id/items", c.Catalog.Items)

	// Orders
	auth.POST("/orders", c.Order.Create)
	auth.GET("/orders/me", c.Order.Mine)
	auth.GET("/orders/:id", c.Order.Detail)

	// Rentals
	auth.POST("/rentals", c.Rental.Create)
	auth.GET("/rentals/me", c.Rental.Mine)
	auth.GET("/rentals/:id", c.Rental.Detail)
}
