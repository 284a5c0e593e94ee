package extract

import "google.golang.org/genai"

// foodItemsSchema constrains the text-mode response to a JSON array of food
// item objects. Gemini enforces the structure server-side, so a successful
// response always unmarshals into []models.FoodItem.
func foodItemsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"food_name":             {Type: genai.TypeString, Description: "The exact name of the product as listed"},
				"food_item_description": {Type: genai.TypeString, Description: "Detailed description including category, form and distinctive characteristics"},
				"price":                 {Type: genai.TypeString, Description: "The price of the product"},
				"quantity":              {Type: genai.TypeString, Description: "Quantity or size information if available"},
			},
			Required: []string{"food_name"},
		},
	}
}

// mealPlanSchema constrains the video-mode response to a weekly meal plan:
// one recipe per day, Monday through Sunday, plus a shopping list.
func mealPlanSchema() *genai.Schema {
	recipe := func() *genai.Schema {
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":         {Type: genai.TypeString, Description: "Name of the meal"},
				"ingredients":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"instructions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"name"},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recipes": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"monday":    recipe(),
					"tuesday":   recipe(),
					"wednesday": recipe(),
					"thursday":  recipe(),
					"friday":    recipe(),
					"saturday":  recipe(),
					"sunday":    recipe(),
				},
				Required: []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
			},
			"shopping_list": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"recipes", "shopping_list"},
	}
}
