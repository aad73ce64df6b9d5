package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/service"
)

type PlaceOrderRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Comment       string `json:"comment"`
	Fulfillment   string `json:"fulfillment" validate:"omitempty,oneof=dine_in takeaway"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=card qr"`
}

// placeOrderHandler godoc
//
//	@Summary		Place order
//	@Description	Composes an order from the cart, submits it and clears the session state
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path		string				true	"Session ID"
//	@Param			request		body		PlaceOrderRequest	true	"Customer and fulfillment details"
//	@Success		201			{object}	service.PlaceOrderResult
//	@Failure		400			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Failure		422			{object}	map[string]string
//	@Router			/sessions/{session_id}/orders [post]
func (app *application) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req PlaceOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	meta := service.CustomerMeta{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Comment:       req.Comment,
		Fulfillment:   domain.FulfillmentType(req.Fulfillment),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}

	result, err := app.orderService.PlaceOrder(r.Context(), sid, meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			app.unprocessableEntityResponse(w, r, err)
		case errors.Is(err, service.ErrOrderInFlight):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHistoryHandler godoc
//
//	@Summary		Get order history
//	@Description	Lists the session's order history, most recent first, capped at 50
//	@Tags			orders
//	@Produce		json
//	@Param			session_id	path	string	true	"Session ID"
//	@Success		200	{array}	domain.ArchivedOrder
//	@Router			/sessions/{session_id}/orders [get]
func (app *application) getOrderHistoryHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	history, err := app.orderService.History(r.Context(), sid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, history); err != nil {
		app.internalServerError(w, r, err)
	}
}

// restoreLastOrderHandler godoc
//
//	@Summary		Restore last order
//	@Description	Repopulates the cart and customizations from the last order backup
//	@Tags			orders
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/sessions/{session_id}/orders/restore [post]
func (app *application) restoreLastOrderHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.orderService.RestoreLastOrder(r.Context(), sid); err != nil {
		if errors.Is(err, service.ErrNothingToRestore) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"message": "last order restored",
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRecentOrdersHandler godoc
//
//	@Summary		Get recent orders
//	@Description	Lists recently archived orders across all sessions
//	@Tags			orders
//	@Produce		json
//	@Param			limit	query	int	false	"Max orders to return"
//	@Success		200	{array}	domain.ArchivedOrder
//	@Router			/orders/recent [get]
func (app *application) getRecentOrdersHandler(w http.ResponseWriter, r *http.Request) {
	limit := app.config.orders.RecentListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	orders, err := app.orderService.RecentOrders(r.Context(), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}
