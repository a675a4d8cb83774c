package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
	productsvc "github.com/vladislavdragonenkov/orderhub/internal/service/product"
)

// ProductHandler обслуживает REST-операции над каталогом.
type ProductHandler struct {
	svc    *productsvc.Service
	logger *log.Entry
}

// NewProductHandler создаёт обработчик каталога.
func NewProductHandler(svc *productsvc.Service, logger *log.Entry) *ProductHandler {
	if logger == nil {
		logger = log.New().WithField("component", "product-handler")
	}
	return &ProductHandler{svc: svc, logger: logger}
}

// Register навешивает маршруты на роутер.
func (h *ProductHandler) Register(r *chi.Mux) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}/status", h.updateStatus)
		r.Delete("/{id}", h.delete)
	})
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	product, err := h.svc.Create(r.Context(), productsvc.CreateInput{
		Name:        req.Name,
		PriceMinor:  req.PriceMinor,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid product id")
		return
	}

	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid product id")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	product, err := h.svc.Update(r.Context(), id, productsvc.CreateInput{
		Name:        req.Name,
		PriceMinor:  req.PriceMinor,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid product id")
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid json body")
		return
	}
	status, err := domain.ParseProductStatus(req.Status)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	product, err := h.svc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid product id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
