package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
	ordersvc "github.com/vladislavdragonenkov/orderhub/internal/service/order"
)

// OrderHandler обслуживает REST-операции над заказами.
type OrderHandler struct {
	svc    *ordersvc.Service
	logger *log.Entry
}

// NewOrderHandler создаёт обработчик заказов.
func NewOrderHandler(svc *ordersvc.Service, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.New().WithField("component", "order-handler")
	}
	return &OrderHandler{svc: svc, logger: logger}
}

// Register навешивает маршруты на роутер.
func (h *OrderHandler) Register(r *chi.Mux) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/client/{clientId}", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Delete("/{id}", h.delete)
		r.Post("/{id}/items", h.addItem)
		r.Delete("/{id}/items/{productId}", h.removeItem)
		r.Patch("/{id}/status", h.updateStatus)
	})
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathID(r, "clientId")
	if !ok {
		writeBadRequest(w, r, "invalid client id")
		return
	}

	order, err := h.svc.Create(r.Context(), clientID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid order id")
		return
	}

	order, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid order id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) addItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid order id")
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	order, err := h.svc.AddItem(r.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid order id")
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		writeBadRequest(w, r, "invalid product id")
		return
	}

	order, err := h.svc.RemoveItem(r.Context(), id, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid order id")
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid json body")
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	order, err := h.svc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}
