package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

var (
	ErrInvalidID = errors.New("invalid ID format")
)

// createSessionHandler godoc
//
//	@Summary		Create session
//	@Description	Mints a new session ID for a storefront client
//	@Tags			sessions
//	@Produce		json
//	@Success		201	{object}	map[string]string
//	@Router			/sessions [post]
func (app *application) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"session_id": uuid.NewString(),
	}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func sessionID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "session_id")
	if id == "" {
		return "", ErrInvalidID
	}

	return id, nil
}

func lineID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "line_id"), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}

	return id, nil
}
