package entity

import (
	"time"
)

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusClaimed   ItemStatus = "claimed"
	ItemStatusGivenAway ItemStatus = "givenAway"
)

type ItemCategory string

const (
	CategoryElectronics ItemCategory = "Electronics"
	CategoryFurniture   ItemCategory = "Furniture"
	CategoryClothing    ItemCategory = "Clothing"
	CategoryBooks       ItemCategory = "Books"
	CategoryToys        ItemCategory = "Toys"
	CategoryHome        ItemCategory = "Home & Garden"
	CategorySports      ItemCategory = "Sports & Recreation"
	CategoryAutomotive  ItemCategory = "Automotive"
	CategoryOther       ItemCategory = "Other"
)

var ItemCategories = []ItemCategory{
	CategoryElectronics,
	CategoryFurniture,
	CategoryClothing,
	CategoryBooks,
	CategoryToys,
	CategoryHome,
	CategorySports,
	CategoryAutomotive,
	CategoryOther,
}

func (c ItemCategory) Valid() bool {
	for _, cat := range ItemCategories {
		if c == cat {
			return true
		}
	}
	return false
}

type Item struct {
	ID          string       `json:"id" firestore:"itemId"`
	OwnerID     string       `json:"owner_id" firestore:"ownerId"`
	Title       string       `json:"title" firestore:"title"`
	Description string       `json:"description" firestore:"description"`
	Category    ItemCategory `json:"category" firestore:"category"`
	City        string       `json:"city" firestore:"city"`
	Photos      []string     `json:"photos" firestore:"photos"`
	Status      ItemStatus   `json:"status" firestore:"status"`
	Latitude    *float64     `json:"latitude,omitempty" firestore:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty" firestore:"longitude,omitempty"`
	CreatedAt   time.Time    `json:"created_at" firestore:"createdAt"`
}
