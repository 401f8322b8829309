package dto

type GenerateVideoRequest struct {
	Instruction           string `json:"instruction" binding:"required"`
	SeedImageURI          string `json:"seed_image_uri" binding:"required"`
	TargetDurationSeconds int    `json:"target_duration_seconds"`
	Resolution            string `json:"resolution"`
	AspectRatio           string `json:"aspect_ratio"`
}

type GenerateVideoResponse struct {
	RunID           string  `json:"run_id"`
	VideoKey        string  `json:"video_key"`
	VideoRegion     string  `json:"video_region"`
	DurationSeconds float64 `json:"duration_seconds"`
	Resolution      string  `json:"resolution"`
}
