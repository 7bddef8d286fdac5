package domain

import "time"

// Item is one stock line in the warehouse.
type Item struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	ItemName        string    `gorm:"not null;index" json:"item_name"`
	ItemCode        *string   `json:"item_code"`
	Description     *string   `json:"description"`
	Quantity        int       `gorm:"not null;default:0" json:"quantity"`
	Unit            *string   `json:"unit"`
	MinimumQuantity *int      `json:"minimum_quantity"`
	ReorderLevel    *int      `json:"reorder_level"`
	Category        *string   `json:"category"`
	SupplierName    *string   `json:"supplier_name"`
	SupplierContact *string   `json:"supplier_contact"`
	Location        *string   `json:"location"`
	CostPrice       *float64  `json:"cost_price"`
	SellingPrice    *float64  `json:"selling_price"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (Item) TableName() string { return "inventory" }

// BelowReorderLevel reports whether stock has fallen to the reorder point.
func (i Item) BelowReorderLevel() bool {
	if i.ReorderLevel == nil {
		return false
	}
	return i.Quantity <= *i.ReorderLevel
}
