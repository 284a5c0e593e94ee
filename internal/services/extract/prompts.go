package extract

// foodItemPromptTemplate embeds the raw page text into the extraction
// instructions. The example objects anchor the model to the expected field
// granularity; the response schema enforces the actual structure.
const foodItemPromptTemplate = `
Given the following TEXT, identify food items along with their details.
For each food item, extract the following:
- food_name: The exact name of the product as listed.
- food_item_description: A detailed description that clearly explains what the product is. Include the product category (e.g., cheese, chocolate, bread), its form (e.g., bar, block, slice), and any distinctive characteristics.
- price: The price of the product.
- quantity: The quantity or size information if available.

Return a JSON array of objects that follow this schema.

Example:
[
    {
        "food_name": "Rittersport",
        "food_item_description": "A milk chocolate bar with a smooth texture and rich flavor",
        "price": "2.99 EUR",
        "quantity": "100g"
    },
    {
        "food_name": "Organic Bread",
        "food_item_description": "A freshly baked whole wheat bread loaf with a crunchy crust and soft interior",
        "price": "3.50 EUR",
        "quantity": "500g"
    }
]

TEXT:
%s
`

// VideoPrompt is the fixed instruction sent alongside the video bytes. It is
// exported because the handler persists the prompt together with the analysis.
const VideoPrompt = `
Analyze this video showing food items and create a meal plan.

Based on the food items visible in the video, generate:
1. Recipes with detailed ingredients and instructions for the meal plans. Meal plans should be for the whole week. Monday to Sunday.
2. A complete shopping list with all required ingredients for the meal plans if you don't have the ingredients in your kitchen. Which are not in the video.
`
