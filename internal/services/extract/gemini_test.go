package extract

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/forage/internal/common"
	"github.com/ternarybob/forage/internal/models"
	"google.golang.org/genai"
)

func newTestService(t *testing.T, apiKey string) *Service {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Gemini.APIKey = apiKey

	service, err := NewService(config, arbor.NewLogger())
	require.NoError(t, err)
	return service
}

func TestNewServiceInvalidTimeout(t *testing.T) {
	config := common.NewDefaultConfig()
	config.Gemini.Timeout = "not-a-duration"

	_, err := NewService(config, arbor.NewLogger())
	assert.Error(t, err)
}

func TestExtractFoodItemsWithoutAPIKey(t *testing.T) {
	service := newTestService(t, "")

	// No credential: degrade to empty result, no remote call is attempted
	items := service.ExtractFoodItems(context.Background(), "Rittersport chocolate 2,99 EUR")
	assert.Nil(t, items)
}

func TestExtractFoodItemsEmptyText(t *testing.T) {
	service := newTestService(t, "test-key")

	assert.Nil(t, service.ExtractFoodItems(context.Background(), ""))
	assert.Nil(t, service.ExtractFoodItems(context.Background(), "   \n\t  "))
}

func TestAnalyzeVideoWithoutAPIKey(t *testing.T) {
	service := newTestService(t, "")

	_, err := service.AnalyzeVideo(context.Background(), []byte("video-bytes"), "video/mp4")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestAnalyzeVideoRejectsNonVideo(t *testing.T) {
	service := newTestService(t, "test-key")

	// Content type is checked before any remote call
	_, err := service.AnalyzeVideo(context.Background(), []byte("not-a-video"), "image/png")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)

	_, err = service.AnalyzeVideo(context.Background(), []byte("not-a-video"), "application/octet-stream")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestAnalyzeVideoEmptyData(t *testing.T) {
	service := newTestService(t, "test-key")

	_, err := service.AnalyzeVideo(context.Background(), nil, "video/mp4")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedContentType)
}

func TestFoodItemsSchema(t *testing.T) {
	schema := foodItemsSchema()

	require.Equal(t, genai.TypeArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, genai.TypeObject, schema.Items.Type)
	assert.Contains(t, schema.Items.Properties, "food_name")
	assert.Contains(t, schema.Items.Properties, "food_item_description")
	assert.Contains(t, schema.Items.Properties, "price")
	assert.Contains(t, schema.Items.Properties, "quantity")
	assert.Equal(t, []string{"food_name"}, schema.Items.Required)
}

func TestMealPlanSchema(t *testing.T) {
	schema := mealPlanSchema()

	require.Equal(t, genai.TypeObject, schema.Type)
	assert.ElementsMatch(t, []string{"recipes", "shopping_list"}, schema.Required)

	recipes := schema.Properties["recipes"]
	require.NotNil(t, recipes)
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	for _, day := range days {
		assert.Contains(t, recipes.Properties, day)
	}
	assert.ElementsMatch(t, days, recipes.Required)

	shoppingList := schema.Properties["shopping_list"]
	require.NotNil(t, shoppingList)
	assert.Equal(t, genai.TypeArray, shoppingList.Type)
}

func TestFoodItemPromptIncludesPageText(t *testing.T) {
	assert.Contains(t, foodItemPromptTemplate, "%s")
}

func TestMealPlanValidation(t *testing.T) {
	validate := validator.New()

	fullWeek := `{
		"recipes": {
			"monday": {"name": "Pasta", "ingredients": ["pasta"], "instructions": ["boil"]},
			"tuesday": {"name": "Soup"},
			"wednesday": {"name": "Salad"},
			"thursday": {"name": "Curry"},
			"friday": {"name": "Pizza"},
			"saturday": {"name": "Stew"},
			"sunday": {"name": "Roast"}
		},
		"shopping_list": ["pasta", "tomatoes"]
	}`

	var plan models.MealPlan
	require.NoError(t, json.Unmarshal([]byte(fullWeek), &plan))
	assert.NoError(t, validate.Struct(&plan))
	assert.Equal(t, "Pasta", plan.Recipes.Monday.Name)
	assert.Equal(t, []string{"pasta", "tomatoes"}, plan.ShoppingList)

	// A plan missing recipe names fails validation
	var incomplete models.MealPlan
	incomplete.ShoppingList = []string{"milk"}
	assert.Error(t, validate.Struct(&incomplete))
}
