package main

import (
	"net/http"
)

type AddCartLineRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
}

// addCartLineHandler godoc
//
//	@Summary		Add product to cart
//	@Description	Appends a new cart line referencing a product
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path		string				true	"Session ID"
//	@Param			request		body		AddCartLineRequest	true	"Product to add"
//	@Success		201			{object}	domain.CartLine
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/sessions/{session_id}/cart [post]
func (app *application) addCartLineHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req AddCartLineRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	line, err := app.cartService.Add(r.Context(), sid, req.ProductID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, line); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCartHandler godoc
//
//	@Summary		Get cart
//	@Description	Lists cart lines in insertion order
//	@Tags			cart
//	@Produce		json
//	@Param			session_id	path	string	true	"Session ID"
//	@Success		200	{array}	domain.CartLine
//	@Router			/sessions/{session_id}/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	lines, err := app.cartService.Lines(r.Context(), sid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, lines); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeCartLineHandler godoc
//
//	@Summary		Remove cart line
//	@Description	Removes one cart line by its line ID
//	@Tags			cart
//	@Param			session_id	path	string	true	"Session ID"
//	@Param			line_id		path	int		true	"Line ID"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Router			/sessions/{session_id}/cart/{line_id} [delete]
func (app *application) removeCartLineHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	lid, err := lineID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.cartService.Remove(r.Context(), sid, lid); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// clearCartHandler godoc
//
//	@Summary		Clear cart
//	@Description	Empties the cart and resets drink customizations
//	@Tags			cart
//	@Param			session_id	path	string	true	"Session ID"
//	@Success		204
//	@Router			/sessions/{session_id}/cart [delete]
func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// clearing the cart also drops the customizations tied to its lines
	if err := app.customizationService.Clear(r.Context(), sid); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.cartService.Clear(r.Context(), sid); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
