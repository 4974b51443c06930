package models

import (
	"github.com/google/uuid"
)

// DefaultInventoryLocation seeds lazily created inventory rows.
const DefaultInventoryLocation = "Default Location"

// Inventory tracks quantity and physical location per product. At most one
// row exists per product (unique index on product_id).
type Inventory struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex" json:"productId"`
	Quantity  int       `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Location  string    `gorm:"column:location;not null" json:"location"`
	InitiatorAudit
}
