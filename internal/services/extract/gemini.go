package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/common"
	"github.com/ternarybob/forage/internal/interfaces"
	"github.com/ternarybob/forage/internal/models"
	"google.golang.org/genai"
)

var (
	// ErrNoAPIKey indicates the Gemini credential was not configured.
	ErrNoAPIKey = errors.New("gemini api key not configured")

	// ErrUnsupportedContentType indicates the uploaded file is not a video.
	ErrUnsupportedContentType = errors.New("file must be a video")
)

// Service implements the ExtractService interface using the Gemini API.
// When no API key is configured the client stays nil: text extraction then
// degrades to empty results and video analysis fails with ErrNoAPIKey.
type Service struct {
	config   *common.GeminiConfig
	logger   arbor.ILogger
	client   *genai.Client
	validate *validator.Validate
	timeout  time.Duration
}

// NewService creates a new Gemini extraction service.
func NewService(config *common.Config, logger arbor.ILogger) (*Service, error) {
	timeout, err := time.ParseDuration(config.Gemini.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Gemini.Timeout, err)
	}

	s := &Service{
		config:   &config.Gemini,
		logger:   logger,
		validate: validator.New(),
		timeout:  timeout,
	}

	if config.Gemini.APIKey == "" {
		logger.Warn().Msg("Gemini API key not configured, extraction is disabled")
		return s, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}
	s.client = client

	logger.Info().
		Str("model", config.Gemini.Model).
		Dur("timeout", timeout).
		Msg("Gemini extraction service initialized")

	return s, nil
}

// ExtractFoodItems identifies food items in raw page text using
// schema-constrained output. Failures never escape: the crawl is a background
// batch operation with no caller waiting, so errors are logged and an empty
// result is returned.
func (s *Service) ExtractFoodItems(ctx context.Context, pageText string) []models.FoodItem {
	if s.client == nil {
		s.logger.Error().Msg("Gemini API key not set, skipping extraction")
		return nil
	}
	if strings.TrimSpace(pageText) == "" {
		return nil
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Info().Int("text_length", len(pageText)).Msg("Sending extraction request to Gemini")

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   foodItemsSchema(),
	}

	prompt := fmt.Sprintf(foodItemPromptTemplate, pageText)

	resp, err := s.client.Models.GenerateContent(
		llmCtx,
		s.config.Model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		config,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Gemini extraction request failed")
		return nil
	}

	responseText := ""
	if resp != nil {
		responseText = resp.Text()
	}
	if responseText == "" {
		s.logger.Error().Msg("Empty response from Gemini")
		return nil
	}

	var items []models.FoodItem
	if err := json.Unmarshal([]byte(responseText), &items); err != nil {
		s.logger.Error().Err(err).Msg("Failed to parse Gemini extraction response")
		return nil
	}

	// Drop individual items that fail validation rather than discarding the page.
	valid := make([]models.FoodItem, 0, len(items))
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			s.logger.Warn().Err(err).Str("food_name", item.FoodName).Msg("Dropping invalid food item")
			continue
		}
		valid = append(valid, item)
	}

	s.logger.Info().
		Int("items", len(valid)).
		Dur("duration", time.Since(startTime)).
		Msg("Extraction completed")

	return valid
}

// AnalyzeVideo produces a weekly meal plan from raw video bytes. This path is
// synchronous and user-initiated, so failures propagate to the caller.
func (s *Service) AnalyzeVideo(ctx context.Context, data []byte, contentType string) (*models.MealPlan, error) {
	if s.client == nil {
		return nil, ErrNoAPIKey
	}
	if !strings.HasPrefix(contentType, "video/") {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedContentType, contentType)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("video data is empty")
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Info().
		Int("video_bytes", len(data)).
		Str("content_type", contentType).
		Msg("Sending video analysis request to Gemini")

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(VideoPrompt),
			genai.NewPartFromBytes(data, contentType),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   mealPlanSchema(),
	}

	resp, err := s.client.Models.GenerateContent(llmCtx, s.config.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini video analysis failed: %w", err)
	}
	responseText := ""
	if resp != nil {
		responseText = resp.Text()
	}
	if responseText == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var plan models.MealPlan
	if err := json.Unmarshal([]byte(responseText), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse meal plan response: %w", err)
	}
	if err := s.validate.Struct(&plan); err != nil {
		return nil, fmt.Errorf("meal plan failed validation: %w", err)
	}

	s.logger.Info().
		Int("shopping_list_items", len(plan.ShoppingList)).
		Dur("duration", time.Since(startTime)).
		Msg("Video analysis completed")

	return &plan, nil
}

// Ensure Service satisfies the interface.
var _ interfaces.ExtractService = (*Service)(nil)
