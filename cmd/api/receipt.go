package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// ReceiptHeader carries the static storefront fields a receipt renderer
// prints above the lines.
type ReceiptHeader struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Cashier     string `json:"cashier"`
}

type ReceiptResponse struct {
	Header      ReceiptHeader       `json:"header"`
	Lines       []domain.PricedLine `json:"lines"`
	TotalAmount int                 `json:"total_amount"`
}

func (app *application) receiptHeader() ReceiptHeader {
	return ReceiptHeader{
		CompanyName: app.config.receipt.CompanyName,
		Address:     app.config.receipt.Address,
		Cashier:     app.config.receipt.Cashier,
	}
}

// getReceiptHandler godoc
//
//	@Summary		Get receipt
//	@Description	Resolves the current cart into priced lines and a total
//	@Tags			receipt
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	ReceiptResponse
//	@Router			/sessions/{session_id}/receipt [get]
func (app *application) getReceiptHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	lines, total, err := app.orderService.Receipt(r.Context(), sid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := ReceiptResponse{
		Header:      app.receiptHeader(),
		Lines:       lines,
		TotalAmount: total,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// watchReceiptHandler godoc
//
//	@Summary		Watch receipt
//	@Description	Streams re-resolved receipts over SSE whenever the session's cart or customizations change
//	@Tags			receipt
//	@Produce		text/event-stream
//	@Param			session_id	path	string	true	"Session ID"
//	@Success		200
//	@Router			/sessions/{session_id}/receipt/watch [get]
func (app *application) watchReceiptHandler(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		app.internalServerError(w, r, errors.New("streaming unsupported"))
		return
	}

	changes, err := app.cartService.Watch(r.Context(), sid)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// initial snapshot, then one event per change notification
	if err := app.writeReceiptEvent(r, w, sid); err != nil {
		app.logger.Errorw("failed to write receipt event", "session_id", sid, "error", err)
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := app.writeReceiptEvent(r, w, sid); err != nil {
				app.logger.Errorw("failed to write receipt event", "session_id", sid, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func (app *application) writeReceiptEvent(r *http.Request, w http.ResponseWriter, sid string) error {
	lines, total, err := app.orderService.Receipt(r.Context(), sid)
	if err != nil {
		return err
	}

	body, err := json.Marshal(ReceiptResponse{Header: app.receiptHeader(), Lines: lines, TotalAmount: total})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "data: %s\n\n", body)

	return err
}
