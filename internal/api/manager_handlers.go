package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"locacar/internal/auth"
	"locacar/internal/entities"
	"locacar/internal/service"
)

// ManagerHandler is the admin-only surface for manager account management.
type ManagerHandler struct {
	service *service.UserService
	log     *logrus.Logger
}

func NewManagerHandler(svc *service.UserService, log *logrus.Logger) *ManagerHandler {
	return &ManagerHandler{service: svc, log: log}
}

func (h *ManagerHandler) List(w http.ResponseWriter, r *http.Request) {
	managers, err := h.service.ListManagers()
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, managers)
}

func (h *ManagerHandler) Get(w http.ResponseWriter, r *http.Request) {
	manager, err := h.service.GetManager(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, manager)
}

func (h *ManagerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateManagerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	manager, err := h.service.CreateManager(auth.ActorFrom(r.Context()), req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, manager)
}

func (h *ManagerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entities.ManagerUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, h.log, err)
		return
	}
	manager, err := h.service.UpdateManager(auth.ActorFrom(r.Context()), mux.Vars(r)["id"], upd)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, manager)
}

func (h *ManagerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteManager(auth.ActorFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Manager deleted successfully."})
}
