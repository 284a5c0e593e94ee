package models

// Recipe is a single meal with its ingredients and preparation steps.
type Recipe struct {
	Name         string   `json:"name" validate:"required"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// WeeklyRecipes holds one recipe per day, Monday through Sunday.
type WeeklyRecipes struct {
	Monday    Recipe `json:"monday"`
	Tuesday   Recipe `json:"tuesday"`
	Wednesday Recipe `json:"wednesday"`
	Thursday  Recipe `json:"thursday"`
	Friday    Recipe `json:"friday"`
	Saturday  Recipe `json:"saturday"`
	Sunday    Recipe `json:"sunday"`
}

// MealPlan is the structured result of analyzing a food video: a full week of
// recipes plus the shopping list of ingredients not visible in the video.
type MealPlan struct {
	Recipes      WeeklyRecipes `json:"recipes"`
	ShoppingList []string      `json:"shopping_list" validate:"required"`
}
