package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/indic-translate/backend/internal/api"
	"github.com/indic-translate/backend/internal/auth"
	"github.com/indic-translate/backend/internal/config"
	"github.com/indic-translate/backend/internal/db"
	"github.com/indic-translate/backend/internal/glossary"
	"github.com/indic-translate/backend/internal/job"
	"github.com/indic-translate/backend/internal/subtitle"
	"github.com/indic-translate/backend/internal/translate"
)

func main() {
	cfg := config.Load()

	// Ensure data directories exist
	os.MkdirAll(cfg.DataPath, 0755)
	os.MkdirAll(cfg.GlossaryPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Translation pipeline
	glossarySource := glossary.NewFileSource(cfg.GlossaryPath)
	glossaryCache := glossary.NewCache(glossarySource, cfg.GlossaryTTL)
	pipeline := translate.NewPipeline(glossaryCache)
	provider := translate.NewGoogleTranslator(cfg.GoogleEndpoint)
	orch := translate.NewOrchestrator(provider, pipeline, cfg.ChunkSize, cfg.RequestDelay, cfg.CallTimeout)
	subTranslator := subtitle.NewTranslator(orch, cfg.BatchSize)
	log.Printf("Translation provider: %s", provider.Name())
	log.Printf("Glossary path: %s", cfg.GlossaryPath)

	// Job queue with handlers for both translation job types
	jobQueue := job.NewJobQueue(database.Handle())
	jobQueue.RegisterHandler(job.JobTranslateDocument, translate.NewDocumentJobHandler(orch, jobQueue))
	jobQueue.RegisterHandler(job.JobTranslateSubtitle, subtitle.NewJobHandler(subTranslator, jobQueue))

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Create router
	router := api.NewRouter(database, jwtService, cfg, orch, subTranslator, glossarySource, jobQueue)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		jobQueue.Stop()
		database.Close()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
