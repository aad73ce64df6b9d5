package domain

type ProductCategory string

const (
	CategoryHotDrinks  ProductCategory = "hot_drinks"
	CategoryMatcha     ProductCategory = "matcha"
	CategoryColdDrinks ProductCategory = "cold_drinks"
	CategoryFresh      ProductCategory = "fresh"
)

type TierKey string

const (
	TierOne   TierKey = "tier1"
	TierTwo   TierKey = "tier2"
	TierThree TierKey = "tier3"
)

// Index maps the tier key to its position in Product.Tiers, -1 for an
// unknown or unset key.
func (k TierKey) Index() int {
	switch k {
	case TierOne:
		return 0
	case TierTwo:
		return 1
	case TierThree:
		return 2
	default:
		return -1
	}
}

// Tier is one volume/price option of a product. A product carries up to
// three tiers; the slice position is the tier index.
type Tier struct {
	VolumeLabel string `bson:"volume_label" json:"volume_label"`
	Price       int    `bson:"price" json:"price"`
}

type Product struct {
	ID          int             `bson:"id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description" json:"description"`
	Category    ProductCategory `bson:"category" json:"category"`
	Image       string          `bson:"image,omitempty" json:"image,omitempty"`
	Tiers       []Tier          `bson:"tiers" json:"tiers"`
}

// TierFor returns the tier the key points at, if the product defines it
// with a price.
func (p Product) TierFor(key TierKey) (Tier, bool) {
	idx := key.Index()
	if idx < 0 || idx >= len(p.Tiers) {
		return Tier{}, false
	}
	if p.Tiers[idx].Price <= 0 {
		return Tier{}, false
	}
	return p.Tiers[idx], true
}

// PriceFor resolves the base price for a selected tier. When the selected
// tier is not defined the price falls back to the first tier, and to zero
// for a product with no tiers at all.
func (p Product) PriceFor(key TierKey) int {
	if tier, ok := p.TierFor(key); ok {
		return tier.Price
	}
	if len(p.Tiers) > 0 {
		return p.Tiers[0].Price
	}
	return 0
}
