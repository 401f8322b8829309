package controllers

import (
	"context"
	"generate-video-lambda/application/ports/inbound"
	"generate-video-lambda/application/ports/outbound"
	"generate-video-lambda/domain"
	"generate-video-lambda/infrastructure/adapters"
	"generate-video-lambda/infrastructure/gin_interface/dto"
	"generate-video-lambda/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"net/http"
)

type VideoGenerationController interface {
	GenerateVideo(c *gin.Context)
	StreamProgress(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type videoGenerationController struct {
	logger        outbound.LoggerPort
	pipeline      inbound.GenerationPipelinePort
	artifactStore outbound.ArtifactStorePort
	broadcaster   *adapters.ProgressBroadcaster
}

func NewVideoGenerationController(logger outbound.LoggerPort, pipeline inbound.GenerationPipelinePort,
	artifactStore outbound.ArtifactStorePort, broadcaster *adapters.ProgressBroadcaster) VideoGenerationController {
	return &videoGenerationController{
		logger:        logger,
		pipeline:      pipeline,
		artifactStore: artifactStore,
		broadcaster:   broadcaster,
	}
}

func (v *videoGenerationController) GenerateVideo(c *gin.Context) {
	var req dto.GenerateVideoRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.AbortWithError(http.StatusBadRequest, err); err != nil {
			v.logger.Error(err, "failed to abort with error")
		}
		return
	}

	userID := c.GetString(middleware.ContextUserIDKey)
	runID := c.Query("run_id")
	if runID == "" {
		runID = uuid.NewString()
	}

	result, err := v.pipeline.Run(newCtx, inbound.StartGenerationParams{
		RunID:                 runID,
		UserID:                userID,
		Instruction:           req.Instruction,
		SeedImageURI:          req.SeedImageURI,
		TargetDurationSeconds: req.TargetDurationSeconds,
		Resolution:            domain.Resolution(req.Resolution),
		AspectRatio:           req.AspectRatio,
	})
	if err != nil {
		v.abortForPipelineError(c, runID, err)
		return
	}

	stored, err := v.artifactStore.Store(newCtx, outbound.StoreArtifactParams{
		UserID:    userID,
		RunID:     runID,
		SourceURI: result.VideoURI,
	})
	if err != nil {
		v.logger.ErrorWithFields(err, "failed to store the generated artifact", map[string]interface{}{
			"run_id": runID,
		})
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to store the generated video"})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateVideoResponse{
		RunID:           runID,
		VideoKey:        stored.VideoKey,
		VideoRegion:     stored.StoreRegion,
		DurationSeconds: result.DurationSeconds,
		Resolution:      string(result.Resolution),
	})
}

// StreamProgress serves the SSE feed of a run's progress messages.
func (v *videoGenerationController) StreamProgress(c *gin.Context) {
	runID := c.Param("runID")
	if runID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "run id is required"})
		return
	}
	v.broadcaster.Handler(runID)(c.Writer, c.Request)
}

func (v *videoGenerationController) abortForPipelineError(c *gin.Context, runID string, err error) {
	v.logger.ErrorWithFields(err, "generation run failed", map[string]interface{}{
		"run_id": runID,
	})

	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.KindUnauthorized:
		// Distinguishable marker so the UI can prompt for re-authentication
		// instead of showing a generic failure.
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "media service rejected the credential",
			"code":  "reauthentication_required",
		})
	case domain.KindTimeout:
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"error": "generation did not complete in time"})
	default:
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "video generation failed"})
	}
}

func (v *videoGenerationController) RegisterRoutes(g *gin.Engine) {
	g.POST("/generate", v.GenerateVideo)
	g.GET("/progress/:runID", middleware.SSEHeaders(), v.StreamProgress)
}
