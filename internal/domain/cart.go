package domain

import "time"

// CartLine references a product in the cart. The line ID is unique for the
// lifetime of the cart; insertion order is display order.
type CartLine struct {
	LineID    int64 `json:"line_id"`
	ProductID int   `json:"product_id"`
}

// CustomizationEntry holds the volume and topping choices for one cart
// line, keyed by line ID. Entries for removed lines are left dangling and
// never read again.
type CustomizationEntry struct {
	SelectedVolume TierKey      `json:"selected_volume,omitempty"`
	Toppings       []ToppingRef `json:"toppings,omitempty"`
}

// HasTopping reports whether a topping with the given ID is already
// selected on the entry.
func (e CustomizationEntry) HasTopping(id int) bool {
	for _, t := range e.Toppings {
		if t.ID == id {
			return true
		}
	}
	return false
}

// OrderBackup is the single-slot snapshot of cart and customization state
// taken just before a placed order clears them. It supports one level of
// undo and survives repeated restores.
type OrderBackup struct {
	Lines     []CartLine                   `json:"lines"`
	Entries   map[int64]CustomizationEntry `json:"entries"`
	Timestamp time.Time                    `json:"timestamp"`
}

// CustomerPreferences are the sticky order-form defaults. Name, phone and
// email carry over between orders; the comment is dropped after each one.
type CustomerPreferences struct {
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Comment       string          `json:"comment,omitempty"`
	Fulfillment   FulfillmentType `json:"fulfillment,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
}
