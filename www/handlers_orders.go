package www

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"ordertrack/orders"
	"ordertrack/store"
)

// Handlers holds dependencies for the order API handlers.
type Handlers struct {
	orders *orders.Manager
}

func (h *Handlers) apiCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName string          `json:"customerName"`
		Amount       decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.orders.Create(r.Context(), req.CustomerName, req.Amount)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handlers) apiListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.List()
	if err != nil {
		writeOrderError(w, err)
		return
	}
	if list == nil {
		list = []store.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) apiGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handlers) apiListOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := orders.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeOrderError(w, err)
		return
	}
	list, err := h.orders.ListByStatus(status)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	if list == nil {
		list = []store.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) apiOrderHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.orders.History(chi.URLParam(r, "id"))
	if err != nil {
		writeOrderError(w, err)
		return
	}
	if history == nil {
		history = []store.OrderHistory{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handlers) apiUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	status, err := orders.ParseStatus(req.Status)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
