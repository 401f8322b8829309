package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"generate-video-lambda/application/ports/outbound"
	"generate-video-lambda/config"
	"generate-video-lambda/domain"
	"net/http"
	"strings"
)

type veoSubmitRequest struct {
	Instances  []veoInstance `json:"instances"`
	Parameters veoParameters `json:"parameters"`
}

type veoInstance struct {
	Prompt string    `json:"prompt"`
	Image  *veoMedia `json:"image,omitempty"`
	Video  *veoMedia `json:"video,omitempty"`
}

type veoMedia struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
}

type veoParameters struct {
	Resolution  string `json:"resolution"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type veoSubmitResponse struct {
	Name string `json:"name"`
}

type veoOperation struct {
	Name     string                `json:"name"`
	Done     bool                  `json:"done"`
	Error    *veoOperationError    `json:"error,omitempty"`
	Response *veoOperationResponse `json:"response,omitempty"`
}

type veoOperationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type veoOperationResponse struct {
	GenerateVideoResponse struct {
		GeneratedSamples []struct {
			Video struct {
				URI             string  `json:"uri"`
				DurationSeconds float64 `json:"durationSeconds"`
				Resolution      string  `json:"resolution"`
			} `json:"video"`
		} `json:"generatedSamples"`
	} `json:"generateVideoResponse"`
}

// veoMediaGenerator talks to the hosted video-generation API. It is also
// where raw service errors get translated into domain error kinds, so
// everything above it reasons about a closed set of failure classes.
type veoMediaGenerator struct {
	ContentFetcher
	logger    outbound.LoggerPort
	veoConfig *config.VeoConfig
}

func NewVeoMediaGenerator(contentFetcher ContentFetcher, veoConfig *config.VeoConfig, logger outbound.LoggerPort) outbound.MediaGeneratorPort {
	return &veoMediaGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		veoConfig:      veoConfig,
	}
}

func (v *veoMediaGenerator) SubmitGeneration(ctx context.Context, req domain.GenerationRequest) (domain.OperationHandle, error) {
	instance := veoInstance{Prompt: req.Instruction}
	if req.Seed.VideoURI != "" {
		instance.Video = &veoMedia{URI: req.Seed.VideoURI, MimeType: "video/mp4"}
	} else {
		instance.Image = &veoMedia{URI: req.Seed.ImageURI, MimeType: "image/png"}
	}

	body := veoSubmitRequest{
		Instances: []veoInstance{instance},
		Parameters: veoParameters{
			Resolution:  string(req.Resolution),
			AspectRatio: req.AspectRatio,
		},
	}

	submitURL := fmt.Sprintf("%s/models/%s:predictLongRunning", v.veoConfig.ApiUrl, v.veoConfig.Model)
	httpReq, err := v.newJSONRequest(ctx, http.MethodPost, submitURL, body)
	if err != nil {
		return "", err
	}

	rawRes, err := v.FetchContent(httpReq)
	if err != nil {
		return "", classifyServiceError(err)
	}

	var submitRes veoSubmitResponse
	if err := json.Unmarshal(rawRes, &submitRes); err != nil {
		v.logger.Error(err, "Failed to unmarshal the submit response")
		return "", domain.NewServiceError(domain.KindRemoteFailed, "malformed submit response", err)
	}
	if submitRes.Name == "" {
		return "", domain.NewServiceError(domain.KindRemoteFailed, "submit response carried no operation name", nil)
	}

	return domain.OperationHandle(submitRes.Name), nil
}

func (v *veoMediaGenerator) CheckStatus(ctx context.Context, handle domain.OperationHandle) (domain.OperationStatus, error) {
	statusURL := fmt.Sprintf("%s/%s", v.veoConfig.ApiUrl, string(handle))
	httpReq, err := v.newJSONRequest(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return domain.OperationStatus{}, err
	}

	rawRes, err := v.FetchContent(httpReq)
	if err != nil {
		return domain.OperationStatus{}, classifyServiceError(err)
	}

	var op veoOperation
	if err := json.Unmarshal(rawRes, &op); err != nil {
		v.logger.Error(err, "Failed to unmarshal the operation status")
		return domain.OperationStatus{}, domain.NewServiceError(domain.KindRemoteFailed, "malformed operation status", err)
	}

	if !op.Done {
		return domain.OperationStatus{Done: false}, nil
	}

	if op.Error != nil {
		return domain.OperationStatus{Done: true, Err: classifyOperationError(op.Error)}, nil
	}

	result, err := extractResult(op.Response)
	if err != nil {
		return domain.OperationStatus{}, err
	}
	return domain.OperationStatus{Done: true, Result: result}, nil
}

func (v *veoMediaGenerator) newJSONRequest(ctx context.Context, method, url string, body interface{}) (*http.Request, error) {
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			v.logger.Error(err, "Failed to marshal the request body")
			return nil, err
		}
		payload = bytes.NewBuffer(raw)
	} else {
		payload = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		v.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("x-goog-api-key", v.veoConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func extractResult(res *veoOperationResponse) (*domain.GenerationResult, error) {
	if res == nil || len(res.GenerateVideoResponse.GeneratedSamples) == 0 {
		return nil, domain.NewServiceError(domain.KindRemoteFailed, "operation completed without a video sample", nil)
	}
	video := res.GenerateVideoResponse.GeneratedSamples[0].Video
	return &domain.GenerationResult{
		VideoURI:        video.URI,
		DurationSeconds: video.DurationSeconds,
		Resolution:      domain.Resolution(video.Resolution),
	}, nil
}

// classifyServiceError maps a transport-level failure onto the domain's
// failure classes: 429 and RESOURCE_EXHAUSTED are rate limiting, 500/503 is
// overload, credential problems (including the "Requested entity was not
// found" answer) are authorization failures. Everything else is fatal.
func classifyServiceError(err error) error {
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		return domain.NewServiceError(domain.KindRemoteFailed, "request to the media service failed", err)
	}

	switch {
	case statusErr.StatusCode == http.StatusTooManyRequests || strings.Contains(statusErr.Body, "RESOURCE_EXHAUSTED"):
		return domain.NewServiceError(domain.KindRateLimited, "media service rate limited the request", err)
	case statusErr.StatusCode == http.StatusInternalServerError || statusErr.StatusCode == http.StatusServiceUnavailable:
		return domain.NewServiceError(domain.KindOverloaded, "media service is overloaded", err)
	case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden ||
		strings.Contains(statusErr.Body, "Requested entity was not found"):
		return domain.NewServiceError(domain.KindUnauthorized, "media service rejected the credential", err)
	default:
		return domain.NewServiceError(domain.KindRemoteFailed, fmt.Sprintf("media service returned status %d", statusErr.StatusCode), err)
	}
}

func classifyOperationError(opErr *veoOperationError) error {
	if strings.Contains(opErr.Message, "Requested entity was not found") {
		return domain.NewServiceError(domain.KindUnauthorized, opErr.Message, nil)
	}
	return domain.NewServiceError(domain.KindRemoteFailed, opErr.Message, nil)
}
