package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/tripflow/itinerary-backend-go/internal/api"
	"github.com/tripflow/itinerary-backend-go/internal/capability"
	"github.com/tripflow/itinerary-backend-go/internal/config"
	"github.com/tripflow/itinerary-backend-go/internal/continuity"
	"github.com/tripflow/itinerary-backend-go/internal/database"
	"github.com/tripflow/itinerary-backend-go/internal/handler"
	"github.com/tripflow/itinerary-backend-go/internal/repository"
	"github.com/tripflow/itinerary-backend-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment")
	}

	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	// Continuity engine
	resolver := continuity.NewLocationResolver()
	classifier := continuity.NewGapClassifier(continuity.NewStaticCountryLookup())
	detector := continuity.NewContinuityDetector(resolver, classifier, continuity.DetectorConfig{
		ConfidenceThreshold: cfg.GapConfidenceThreshold,
		OvernightGapHours:   cfg.OvernightGapHours,
		EveningHour:         cfg.EveningHour,
		MorningCutoffHour:   cfg.MorningCutoffHour,
	})

	var durations capability.DurationInferrer = capability.NewHeuristicDurationInferrer()
	if cfg.OpenAIAPIKey != "" {
		durations = capability.NewLLMDurationInferrer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		log.Printf("LLM-backed duration inference enabled")
	}

	// Upstream search/geocoding collaborators allow roughly 1 req/s
	pacer := capability.NewPacer(time.Second)
	resolverCfg := continuity.DefaultResolverConfig()
	resolverCfg.FlightBufferMinutes = cfg.FlightTransferBufferMinutes
	resolverCfg.TransferBufferMinutes = cfg.LocalTransferBufferMinutes
	gapResolver := continuity.NewGapResolver(nil, durations, pacer, resolverCfg)

	orchestrator := continuity.NewOrchestrator(detector, gapResolver, continuity.NewSemanticReviewer())

	// Persistence and API
	itineraryRepo := repository.NewItineraryRepository(db)
	segmentRepo := repository.NewSegmentRepository(db)
	itineraryService := service.NewItineraryService(itineraryRepo, segmentRepo, detector, orchestrator)
	itineraryHandler := handler.NewItineraryHandler(itineraryService)

	router := api.SetupRouter(cfg, itineraryHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
