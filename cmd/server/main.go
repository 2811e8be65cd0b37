package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/banquet-seating/internal/config"
	"github.com/iliyamo/banquet-seating/internal/database"
	"github.com/iliyamo/banquet-seating/internal/handler"
	"github.com/iliyamo/banquet-seating/internal/middleware"
	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/queue"
	"github.com/iliyamo/banquet-seating/internal/repository"
	"github.com/iliyamo/banquet-seating/internal/router"
	"github.com/iliyamo/banquet-seating/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config
	cacheCfg := config.LoadCacheConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.StoreDriver == config.DriverMySQL {
		var err error
		db, err = database.Open(ctx, database.Params{User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName})
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
	}
	guests, err := repository.OpenGuestStore(ctx, repository.StoreOptions{
		Driver:    cfg.StoreDriver,
		CSVPath:   cfg.DataFile,
		XLSXPath:  cfg.XLSXFile,
		XLSXSheet: cfg.XLSXSheet,
		DB:        db,
	})
	if err != nil {
		log.Fatalf("guest store: %v", err)
	}

	// Redis is optional: without it the view lives in memory and reports are not cached.
	rdb := config.NewRedisClient()
	var views service.ViewStore = repository.NewMemoryViewStore()
	if rdb != nil {
		views = repository.NewRedisViewStore(rdb, os.Getenv("VIEW_KEY"))
		defer rdb.Close()
	} else {
		log.Printf("redis unavailable; view state kept in memory, report cache off")
	}
	gen := repository.NewGeneration(rdb, cacheCfg.GenerationKey())

	opts := service.Options{
		Defaults: model.ViewState{Rows: cfg.Rows, Cols: cfg.Cols, Scheme: cfg.Scheme, Mode: model.ModeMove},
		Cache:    gen,
	}
	if cfg.QueueOn {
		opts.Publisher = queue.NewPublisher(cfg.AMQPURL)
		go func() {
			if err := queue.StartAuditConsumer(ctx, cfg.AMQPURL, cfg.AuditLog); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("audit-consumer: stopped: %v", err)
			}
		}()
	}
	svc := service.New(guests, views, opts)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	router.RegisterRoutes(e, guests)
	router.RegisterSeating(e, handler.NewSeatingHandler(svc))
	router.RegisterReports(e, handler.NewReportHandler(svc, cfg.EventTitle, cfg.GuestTarget), middleware.NewReportCache(cacheCfg, rdb, gen))

	addr := ":" + cfg.Port                                                                           // Address string with port
	log.Printf("listening on %s (env=%s store=%s grid=%dx%d)", addr, cfg.Env, cfg.StoreDriver, cfg.Rows, cfg.Cols) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
