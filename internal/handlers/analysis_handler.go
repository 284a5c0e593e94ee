package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/interfaces"
	"github.com/ternarybob/forage/internal/models"
	"github.com/ternarybob/forage/internal/services/extract"
)

// maxVideoUploadBytes caps the multipart upload size (64 MB)
const maxVideoUploadBytes = 64 << 20

// AnalysisHandler handles video upload analysis and retrieval of the stored
// meal plan
type AnalysisHandler struct {
	extractor interfaces.ExtractService
	storage   interfaces.AnalysisStorage
	logger    arbor.ILogger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(extractor interfaces.ExtractService, storage interfaces.AnalysisStorage, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		extractor: extractor,
		storage:   storage,
		logger:    logger,
	}
}

// AnalyzeVideoHandler handles POST /analyze-video. The analysis runs
// synchronously within the request: the meal plan is returned to the caller
// and persisted as the sole retained analysis.
func (h *AnalysisHandler) AnalyzeVideoHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxVideoUploadBytes)
	file, header, err := r.FormFile("video")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "video file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read uploaded video")
		WriteError(w, http.StatusBadRequest, "failed to read uploaded video")
		return
	}

	contentType := header.Header.Get("Content-Type")

	plan, err := h.extractor.AnalyzeVideo(r.Context(), data, contentType)
	if err != nil {
		h.writeAnalyzeError(w, err)
		return
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to serialize meal plan")
		WriteError(w, http.StatusInternalServerError, "failed to serialize meal plan")
		return
	}

	record := &models.VideoAnalysisRecord{
		Filename:    header.Filename,
		ContentType: contentType,
		Prompt:      extract.VideoPrompt,
		Analysis:    string(planJSON),
	}
	if err := h.storage.ReplaceAnalysis(r.Context(), record); err != nil {
		h.logger.Error().Err(err).Msg("Failed to persist video analysis")
		WriteError(w, http.StatusInternalServerError, "failed to persist analysis")
		return
	}

	h.logger.Info().Str("filename", header.Filename).Msg("Video analysis completed")
	WriteJSON(w, http.StatusOK, plan)
}

// writeAnalyzeError maps extraction failures to response codes: missing
// credential is a server configuration problem, a non-video upload is a
// client error, everything else surfaces as an upstream failure.
func (h *AnalysisHandler) writeAnalyzeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, extract.ErrNoAPIKey):
		WriteError(w, http.StatusInternalServerError, "Gemini API key not configured")
	case errors.Is(err, extract.ErrUnsupportedContentType):
		WriteError(w, http.StatusBadRequest, "File must be a video")
	default:
		h.logger.Error().Err(err).Msg("Video analysis failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// LatestAnalysisHandler handles GET /analysis, returning the most recently
// stored meal plan or a not-found response when nothing has been analyzed yet.
func (h *AnalysisHandler) LatestAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	record, err := h.storage.GetLatestAnalysis(r.Context())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "No analysis found")
			return
		}
		h.logger.Error().Err(err).Msg("Failed to load latest analysis")
		WriteError(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}

	var plan models.MealPlan
	if err := json.Unmarshal([]byte(record.Analysis), &plan); err != nil {
		h.logger.Error().Err(err).Str("id", record.ID).Msg("Stored analysis is not valid JSON")
		WriteError(w, http.StatusInternalServerError, "stored analysis is corrupt")
		return
	}

	WriteJSON(w, http.StatusOK, plan)
}
