package adapters

import (
	"bytes"
	"context"
	"fmt"
	"generate-video-lambda/application/ports/outbound"
	"generate-video-lambda/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"net/http"
)

// s3ArtifactStore downloads the media the generation result points at and
// keeps a copy in the caller's bucket, so the artifact survives the remote
// service's retention window.
type s3ArtifactStore struct {
	ContentFetcher
	logger    outbound.LoggerPort
	s3Svc     *s3.S3
	s3Config  *config.S3Config
	veoConfig *config.VeoConfig
}

func NewS3ArtifactStore(contentFetcher ContentFetcher, s3Config *config.S3Config, veoConfig *config.VeoConfig,
	logger outbound.LoggerPort) outbound.ArtifactStorePort {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(s3Config.Region)})
	if err != nil {
		logger.Error(err, "Failed to create session")
	}
	return &s3ArtifactStore{
		ContentFetcher: contentFetcher,
		logger:         logger,
		s3Svc:          s3.New(sess),
		s3Config:       s3Config,
		veoConfig:      veoConfig,
	}
}

func (s *s3ArtifactStore) Store(ctx context.Context, params outbound.StoreArtifactParams) (*outbound.StoreArtifactResponse, error) {
	payload, err := s.download(ctx, params.SourceURI)
	if err != nil {
		s.logger.Error(err, "Failed to download the generated video")
		return nil, err
	}

	itemPath := s.itemPath(params)

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(itemPath),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("video/mp4"),
	}

	if _, err := s.s3Svc.PutObjectWithContext(ctx, putInput); err != nil {
		s.logger.Error(err, "Failed to upload object to S3")
		return nil, err
	}

	s.logger.InfoWithFields("artifact stored", map[string]interface{}{
		"run_id": params.RunID,
		"key":    itemPath,
	})

	return &outbound.StoreArtifactResponse{
		VideoKey:    itemPath,
		StoreRegion: s.s3Config.Region,
	}, nil
}

func (s *s3ArtifactStore) download(ctx context.Context, sourceURI string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURI, nil)
	if err != nil {
		return nil, err
	}
	// The service keys artifact downloads to the same credential that
	// produced them.
	req.Header.Set("x-goog-api-key", s.veoConfig.ApiKey)

	return s.FetchContent(req)
}

func (s *s3ArtifactStore) itemPath(params outbound.StoreArtifactParams) string {
	return fmt.Sprintf("user/%s/run/%s/video/%s.mp4", params.UserID, params.RunID, uuid.NewString())
}
