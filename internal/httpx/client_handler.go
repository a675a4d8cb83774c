package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
	clientsvc "github.com/vladislavdragonenkov/orderhub/internal/service/client"
)

// ClientHandler обслуживает REST-операции над клиентами.
type ClientHandler struct {
	svc    *clientsvc.Service
	logger *log.Entry
}

// NewClientHandler создаёт обработчик клиентов.
func NewClientHandler(svc *clientsvc.Service, logger *log.Entry) *ClientHandler {
	if logger == nil {
		logger = log.New().WithField("component", "client-handler")
	}
	return &ClientHandler{svc: svc, logger: logger}
}

// Register навешивает маршруты на роутер.
func (h *ClientHandler) Register(r *chi.Mux) {
	r.Route("/clients", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}/status", h.updateStatus)
		r.Delete("/{id}", h.delete)
	})
}

func (h *ClientHandler) create(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	client, err := h.svc.Create(r.Context(), req.Name, req.CPF)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toClientResponse(client))
}

func (h *ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, toClientResponse(client))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ClientHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid client id")
		return
	}

	client, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid client id")
		return
	}

	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	client, err := h.svc.Update(r.Context(), id, req.Name, req.CPF)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid client id")
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid json body")
		return
	}
	status, err := domain.ParseClientStatus(req.Status)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	client, err := h.svc.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, r, "invalid client id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
