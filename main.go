package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"nawabus/internal/config"
	"nawabus/internal/db"
	router "nawabus/internal/http"
	"nawabus/internal/services"
	"nawabus/internal/utils"
	"nawabus/pkg/multicaixa"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn := config.ConnectDB(env)
	defer config.CloseDB()

	if err := db.EnsureSchema(conn); err != nil {
		utils.Logger().Fatalf("falha ao preparar o esquema: %v", err)
	}

	var drafts services.DraftStore = services.NewMemoryDraftStore()
	if client := config.ConnectRedis(env); client != nil {
		drafts = services.RedisDraftStore{Client: client}
	}

	gateway := multicaixa.NewGateway(env.PaymentAPIURL)

	r := router.NewRouter(env, conn, drafts, gateway)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Logger().Infof("servidor em http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger().Fatalf("falha ao iniciar o servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Logger().Info("a encerrar o servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger().Fatalf("encerramento falhou: %v", err)
	}

	utils.Logger().Info("servidor encerrado")
}
