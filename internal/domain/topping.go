package domain

type ToppingKind string

const (
	ToppingGeneral         ToppingKind = "general"
	ToppingAlternativeMilk ToppingKind = "alternative_milk"
	ToppingSyrupHot        ToppingKind = "syrup_hot"
	ToppingSyrupCold       ToppingKind = "syrup_cold"
)

type Topping struct {
	ID    int         `bson:"id" json:"id"`
	Name  string      `bson:"name" json:"name"`
	Price int         `bson:"price" json:"price"`
	Kind  ToppingKind `bson:"kind" json:"kind"`
}

// ToppingRef is a price snapshot taken when the topping is selected for a
// cart line. Catalog price changes after selection never reprice it.
type ToppingRef struct {
	ID    int    `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Price int    `bson:"price" json:"price"`
}

// Ref snapshots the topping for attachment to a cart line.
func (t Topping) Ref() ToppingRef {
	return ToppingRef{ID: t.ID, Name: t.Name, Price: t.Price}
}

// ToppingCatalog groups the loaded toppings by kind.
type ToppingCatalog struct {
	General         []Topping `json:"general"`
	AlternativeMilk []Topping `json:"alternative_milk"`
	SyrupsHot       []Topping `json:"syrups_hot"`
	SyrupsCold      []Topping `json:"syrups_cold"`
}

// VisibleFor lists the toppings offered for a product category: general
// toppings first, then the syrups matching the drink temperature, then
// alternative milks. The concatenation order is part of the contract.
func (c ToppingCatalog) VisibleFor(category ProductCategory) []Topping {
	out := make([]Topping, 0, len(c.General)+len(c.SyrupsHot)+len(c.SyrupsCold)+len(c.AlternativeMilk))
	out = append(out, c.General...)
	switch category {
	case CategoryHotDrinks:
		out = append(out, c.SyrupsHot...)
	case CategoryColdDrinks:
		out = append(out, c.SyrupsCold...)
	}
	out = append(out, c.AlternativeMilk...)
	return out
}

// Find looks a topping up by ID across all groups.
func (c ToppingCatalog) Find(id int) (Topping, bool) {
	for _, group := range [][]Topping{c.General, c.AlternativeMilk, c.SyrupsHot, c.SyrupsCold} {
		for _, t := range group {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Topping{}, false
}
