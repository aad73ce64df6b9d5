package main

import (
	"net/http"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// getPreferencesHandler godoc
//
//	@Summary		Get customer preferences
//	@Description	Returns the sticky order-form defaults for a session
//	@Tags			preferences
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	domain.CustomerPreferences
//	@Router			/sessions/{session_id}/preferences [get]
func (app *application) getPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	prefs, err := app.prefsRepo.Get(r.Context(), sid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, prefs); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SavePreferencesRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Comment       string `json:"comment"`
	Fulfillment   string `json:"fulfillment" validate:"omitempty,oneof=dine_in takeaway"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=card qr"`
}

// savePreferencesHandler godoc
//
//	@Summary		Save customer preferences
//	@Description	Stores the order-form defaults for a session
//	@Tags			preferences
//	@Accept			json
//	@Param			session_id	path	string					true	"Session ID"
//	@Param			request		body	SavePreferencesRequest	true	"Preferences"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Router			/sessions/{session_id}/preferences [put]
func (app *application) savePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req SavePreferencesRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	prefs := domain.CustomerPreferences{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Comment:       req.Comment,
		Fulfillment:   domain.FulfillmentType(req.Fulfillment),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}

	if err := app.prefsRepo.Save(r.Context(), sid, prefs); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
