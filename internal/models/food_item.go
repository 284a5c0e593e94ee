package models

import "time"

// FoodItem is a single extracted product as returned by the model.
// Instances are transient: they are validated, persisted as FoodItemRecord
// and then discarded.
type FoodItem struct {
	FoodName            string `json:"food_name" validate:"required"`
	FoodItemDescription string `json:"food_item_description"`
	Price               string `json:"price"`
	Quantity            string `json:"quantity"`
}

// FoodItemRecord is a persisted food item tied to the page it was found on.
type FoodItemRecord struct {
	ID                  string    `json:"id" badgerhold:"key"`
	SourceURL           string    `json:"source_url"`
	FoodName            string    `json:"food_name"`
	FoodItemDescription string    `json:"food_item_description"`
	Price               string    `json:"price"`
	Quantity            string    `json:"quantity"`
	CreatedAt           time.Time `json:"created_at"`
}
