package servehttp

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloyt/common"

	"github.com/gin-gonic/gin"
)

// StartHTTPServer serves the admin api and blocks until a shutdown
// signal arrives, then drains in-flight requests.
func StartHTTPServer(engine *gin.Engine) {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.Log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	// kill -9 sends syscall.SIGKILL, which can't be caught
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	common.Log.Info("shutdown signal has been received, the service will exit in 3 seconds")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.Log.Fatalf("http server shutdown failed: %v", err)
	}
	common.Log.Info("http server is shutdown gracefully, new request will be rejected")

	<-ctx.Done()
	common.Log.Info("service exiting")
}
