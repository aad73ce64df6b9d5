package service

import "github.com/25260173/crema-cafe-demo/internal/domain"

// Catalog is the read-only product/topping lookup the services price
// against. Satisfied by catalog.Store.
type Catalog interface {
	FindProduct(id int) (domain.Product, bool)
	FindTopping(id int) (domain.Topping, bool)
}
