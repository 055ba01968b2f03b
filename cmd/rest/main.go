package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"linen-chatbot-be/internal/bootstrap"
	"linen-chatbot-be/internal/config"
	"linen-chatbot-be/internal/server"
	"linen-chatbot-be/internal/tracer"
	"linen-chatbot-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Observability)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database (optional; only the interaction log needs it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			log.Printf("[WARN] Unable to connect to GORM DB, interaction log disabled: %v", err)
		} else {
			gormDB = db
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	container.Start(ctx)

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
