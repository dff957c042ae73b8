package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"locacar/internal/auth"
	"locacar/internal/entities"
	"locacar/internal/service"
)

type ClientHandler struct {
	service *service.ClientService
	log     *logrus.Logger
}

func NewClientHandler(svc *service.ClientService, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{service: svc, log: log}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.List()
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	client, err := h.service.Create(auth.ActorFrom(r.Context()), req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entities.ClientUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, h.log, err)
		return
	}
	client, err := h.service.Update(auth.ActorFrom(r.Context()), mux.Vars(r)["id"], upd)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(auth.ActorFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully."})
}
