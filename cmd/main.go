package main

import (
	"fmt"
	"generate-video-lambda/application/ports/outbound"
	"generate-video-lambda/application/services"
	"generate-video-lambda/config"
	"generate-video-lambda/infrastructure/adapters"
	"generate-video-lambda/infrastructure/gin_interface/controllers"
	"generate-video-lambda/middleware"
	mockgenerator "generate-video-lambda/mock"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"os"
)

func main() {
	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	dispatcher := adapters.NewAntsDispatcher(workerPool)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	veoConfig, err := config.GetVeoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get veo config")
	}

	var mediaGenerator outbound.MediaGeneratorPort
	if os.Getenv("USE_FAKE_GENERATOR") == "true" {
		mediaGenerator = mockgenerator.NewFakeMediaGenerator(zeroLogger, 2)
	} else {
		mediaGenerator = adapters.NewVeoMediaGenerator(contentFetcher, veoConfig, zeroLogger)
	}

	retryPolicy := services.RetryPolicy{
		MaxRetries:   pipelineConfig.MaxRetries,
		InitialDelay: pipelineConfig.InitialRetryDelay,
	}
	retryExecutor := services.NewRetryExecutor(retryPolicy, zeroLogger)
	jobPoller := services.NewJobPoller(retryExecutor, zeroLogger, pipelineConfig.PollInterval, pipelineConfig.MaxPollWait)

	broadcaster := adapters.NewProgressBroadcaster(dispatcher, zeroLogger)
	defer broadcaster.Close()

	pipeline := services.NewGenerationPipeline(mediaGenerator, jobPoller, broadcaster, zeroLogger)

	artifactStore := adapters.NewS3ArtifactStore(contentFetcher, s3Config, veoConfig, zeroLogger)

	videoController := controllers.NewVideoGenerationController(zeroLogger, pipeline, artifactStore, broadcaster)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	videoController.RegisterRoutes(router)

	if err := router.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
