package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type FulfillmentType string

const (
	FulfillmentDineIn   FulfillmentType = "dine_in"
	FulfillmentTakeaway FulfillmentType = "takeaway"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentQR   PaymentMethod = "qr"
)

type CustomerInfo struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Email   string `bson:"email" json:"email"`
	Comment string `bson:"comment" json:"comment"`
}

// PricedLine is the resolver's view of one cart line: base price for the
// selected volume plus the topping snapshots. Derived, never persisted.
type PricedLine struct {
	LineID         int64        `json:"line_id"`
	ProductID      int          `json:"product_id"`
	ProductName    string       `json:"product_name"`
	BasePrice      int          `json:"base_price"`
	ToppingsTotal  int          `json:"toppings_total"`
	LineTotal      int          `json:"line_total"`
	SelectedVolume TierKey      `json:"selected_volume,omitempty"`
	VolumeLabel    string       `json:"volume_label,omitempty"`
	Toppings       []ToppingRef `json:"toppings"`
}

type OrderLine struct {
	ProductID   int          `bson:"product_id" json:"product_id"`
	ProductName string       `bson:"product_name" json:"product_name"`
	BasePrice   int          `bson:"base_price" json:"base_price"`
	LineTotal   int          `bson:"line_total" json:"line_total"`
	VolumeLabel string       `bson:"volume_label,omitempty" json:"volume_label,omitempty"`
	Toppings    []ToppingRef `bson:"toppings" json:"toppings"`
}

// Order is immutable once composed. Orders are always created pending.
type Order struct {
	ID            int64           `bson:"id" json:"id"`
	OrderNumber   string          `bson:"order_number" json:"order_number"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	Status        OrderStatus     `bson:"status" json:"status"`
	Customer      CustomerInfo    `bson:"customer" json:"customer"`
	Fulfillment   FulfillmentType `bson:"fulfillment" json:"fulfillment"`
	PaymentMethod PaymentMethod   `bson:"payment_method" json:"payment_method"`
	Lines         []OrderLine     `bson:"lines" json:"lines"`
	TotalAmount   int             `bson:"total_amount" json:"total_amount"`
	ReceiptNumber string          `bson:"receipt_number" json:"receipt_number"`
}

// ArchivedOrder wraps an order with the moment it entered history.
type ArchivedOrder struct {
	Order      Order     `bson:"order" json:"order"`
	ArchivedAt time.Time `bson:"archived_at" json:"archived_at"`
}
