package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pawel3ala/wavestone/internal/config"
	"github.com/pawel3ala/wavestone/internal/handlers"
	"github.com/pawel3ala/wavestone/internal/logging"
	loggingmw "github.com/pawel3ala/wavestone/internal/middleware/logging"
	"github.com/pawel3ala/wavestone/internal/mykafka"
	"github.com/pawel3ala/wavestone/internal/store"
	httpserver "github.com/pawel3ala/wavestone/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if configuration.JWT_SECRET == "" {
		log.Fatal("missing required env JWT_SECRET")
	}

	logger := logging.New(configuration.LOG_LEVEL)

	st, err := store.Open()
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}
	if err := st.Seed(configuration.SEED_USERNAME, configuration.SEED_PASSWORD); err != nil {
		log.Fatalf("store seed error: %v", err)
	}

	var brokers []string
	if configuration.KAFKA_ADDRESS != "" {
		brokers = []string{configuration.KAFKA_ADDRESS}
	}
	prod := mykafka.NewProducer(brokers)

	jwtSecret := []byte(configuration.JWT_SECRET)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Store: st, JWTSecret: jwtSecret, Producer: prod},
		ProductHandler: &handlers.ProductHandler{Store: st, Producer: prod},
		JWTSecret:      jwtSecret,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := st.Close(); err != nil {
		log.Printf("store close error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
