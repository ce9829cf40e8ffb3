package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/configs"
	"github.com/mohammedmirzada/order-tracking/dashboard"
)

func main() {
	cfg := configs.LoadConfig()

	r := gin.Default()
	srv := dashboard.NewServer(dashboard.NewClient(cfg.APIURL))
	srv.Register(r, cfg.SessionSecret, cfg.SessionSecure)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.DashboardPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("dashboard listening on %s (api %s)", httpSrv.Addr, cfg.APIURL)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
