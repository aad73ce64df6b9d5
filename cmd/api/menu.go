package main

import (
	"net/http"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// getMenuHandler godoc
//
//	@Summary		Get menu
//	@Description	List all products in catalog order
//	@Tags			menu
//	@Produce		json
//	@Success		200	{array}	domain.Product
//	@Router			/menu [get]
func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	products := app.catalog.Products()

	if err := app.jsonRespone(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getToppingsHandler godoc
//
//	@Summary		Get toppings for a category
//	@Description	List toppings visible for a product category
//	@Tags			menu
//	@Produce		json
//	@Param			category	query	string	true	"Product category"
//	@Success		200	{array}	domain.Topping
//	@Router			/menu/toppings [get]
func (app *application) getToppingsHandler(w http.ResponseWriter, r *http.Request) {
	category := domain.ProductCategory(r.URL.Query().Get("category"))

	toppings := app.catalog.ToppingsFor(category)

	if err := app.jsonRespone(w, http.StatusOK, toppings); err != nil {
		app.internalServerError(w, r, err)
	}
}
