// Package main bookstore API.
//
// @title           Bookstore API
// @version         1.0
// @description     Bookstore service (catalog, orders, rentals).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/RazvanV12/BookStoreAPI/app/echoServer"
	authctrl "github.com/RazvanV12/BookStoreAPI/app/echoServer/controller/auth"
	catalogctrl "github.com/RazvanV12/BookStoreAPI/app/echoServer/controller/catalog"
	orderctrl "github.com/RazvanV12/BookStoreAPI/app/echoServer/controller/order"
	rentalctrl "github.com/RazvanV12/BookStoreAPI/app/echoServer/controller/rental"
	"github.com/RazvanV12/BookStoreAPI/app/echoServer/validation"
	"github.com/RazvanV12/BookStoreAPI/config"
	catalogrepo "github.com/RazvanV12/BookStoreAPI/repository/catalog"
	orderrepo "github.com/RazvanV12/BookStoreAPI/repository/order"
	rentalrepo "github.com/RazvanV12/BookStoreAPI/repository/rental"
	userrepo "github.com/RazvanV12/BookStoreAPI/repository/user"
	"github.com/RazvanV12/BookStoreAPI/seed"
	authsvc "github.com/RazvanV12/BookStoreAPI/service/auth"
	catalogsvc "github.com/RazvanV12/BookStoreAPI/service/catalog"
	ordersvc "github.com/RazvanV12/BookStoreAPI/service/order"
	rentalsvc "github.com/RazvanV12/BookStoreAPI/service/rental"
	"github.com/RazvanV12/BookStoreAPI/util/database"
	"github.com/RazvanV12/BookStoreAPI/util/metrics"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(cfg.MigrationsDir); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	if cfg.SeedData {
		if err := seed.Run(ctx, db, log); err != nil {
			log.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	// repos
	ur := userrepo.New(db.DB)
	cr := catalogrepo.New(db.DB)
	or := orderrepo.New(db.DB)
	rr := rentalrepo.New(db.DB)

	// services
	workflow := ordersvc.NewWorkflow(or, cfg.WorkflowDelay, log)
	as := authsvc.New(ur, cfg.JWTSecret)
	cs := catalogsvc.New(cr)
	osvc := ordersvc.New(db, cr, or, workflow)
	rs := rentalsvc.New(db, cr, rr)

	// stuck order sweeper
	sweeper := ordersvc.NewSweeper(or, cfg.StuckAfter, log)
	cr0 := cron.New()
	if _, err := cr0.AddFunc(cfg.SweepSpec, sweeper.Run); err != nil {
		log.Error("sweep schedule invalid", "spec", cfg.SweepSpec, "err", err)
		os.Exit(1)
	}
	cr0.Start()
	defer cr0.Stop()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cs, Log: log}
	orderC := &orderctrl.Controller{Svc: osvc, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Catalog: catalogC,
		Order:   orderC,
		Rental:  rentalC,

		JWTSecret: cfg.JWTSecret,
	})

	log.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
