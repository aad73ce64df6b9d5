package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/service"
	"github.com/go-chi/chi"
)

type SetVolumeRequest struct {
	Volume string `json:"volume" validate:"required,oneof=tier1 tier2 tier3"`
}

// setVolumeHandler godoc
//
//	@Summary		Select volume
//	@Description	Sets the volume tier for a cart line
//	@Tags			customization
//	@Accept			json
//	@Param			session_id	path	string				true	"Session ID"
//	@Param			line_id		path	int					true	"Line ID"
//	@Param			request		body	SetVolumeRequest	true	"Volume tier"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Router			/sessions/{session_id}/cart/{line_id}/volume [put]
func (app *application) setVolumeHandler(w http.ResponseWriter, r *http.Request) {
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

	var req SetVolumeRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.customizationService.SetVolume(r.Context(), sid, lid, domain.TierKey(req.Volume)); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type AddToppingRequest struct {
	ToppingID int `json:"topping_id" validate:"required,min=1"`
}

// addToppingHandler godoc
//
//	@Summary		Add topping
//	@Description	Adds a topping to a cart line, snapshotting its price
//	@Tags			customization
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path		string				true	"Session ID"
//	@Param			line_id		path		int					true	"Line ID"
//	@Param			request		body		AddToppingRequest	true	"Topping to add"
//	@Success		201			{object}	domain.ToppingRef
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/sessions/{session_id}/cart/{line_id}/toppings [post]
func (app *application) addToppingHandler(w http.ResponseWriter, r *http.Request) {
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

	var req AddToppingRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ref, err := app.customizationService.AddTopping(r.Context(), sid, lid, req.ToppingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateTopping):
			app.conflictResponse(w, r, err)
		case errors.Is(err, service.ErrToppingNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, ref); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeToppingHandler godoc
//
//	@Summary		Remove topping
//	@Description	Removes a topping from a cart line; absent toppings are a no-op
//	@Tags			customization
//	@Param			session_id	path	string	true	"Session ID"
//	@Param			line_id		path	int		true	"Line ID"
//	@Param			topping_id	path	int		true	"Topping ID"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Router			/sessions/{session_id}/cart/{line_id}/toppings/{topping_id} [delete]
func (app *application) removeToppingHandler(w http.ResponseWriter, r *http.Request) {
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

	toppingID, err := strconv.Atoi(chi.URLParam(r, "topping_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.customizationService.RemoveTopping(r.Context(), sid, lid, toppingID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
