package www

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ordertrack/orders"
	"ordertrack/store"
)

// NewOrderRouter creates the order-service router.
func NewOrderRouter(mgr *orders.Manager) http.Handler {
	h := &Handlers{orders: mgr}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.apiCreateOrder)
		r.Get("/", h.apiListOrders)
		r.Get("/status/{status}", h.apiListOrdersByStatus)
		r.Get("/{id}", h.apiGetOrder)
		r.Get("/{id}/history", h.apiOrderHistory)
		r.Patch("/{id}/status", h.apiUpdateOrderStatus)
	})

	return r
}

// NewNotifyRouter creates the notification-service router. audit may be nil
// when the audit log is disabled.
func NewNotifyRouter(hub *Hub, audit *store.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/notifications/stream", hub.HandleStream)

	if audit != nil {
		r.Get("/notifications", func(w http.ResponseWriter, req *http.Request) {
			limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
			list, err := audit.ListNotifications(limit)
			if err != nil {
				log.Printf("list notifications: %v", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if list == nil {
				list = []store.Notification{}
			}
			writeJSON(w, http.StatusOK, list)
		})
	}

	return r
}
