package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"locacar/internal/auth"
	"locacar/internal/entities"
	"locacar/internal/service"
)

type CarHandler struct {
	service *service.CarService
	log     *logrus.Logger
}

func NewCarHandler(svc *service.CarService, log *logrus.Logger) *CarHandler {
	return &CarHandler{service: svc, log: log}
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.List()
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	car, err := h.service.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateCarRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	car, err := h.service.Create(auth.ActorFrom(r.Context()), req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entities.CarUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, h.log, err)
		return
	}
	car, err := h.service.Update(auth.ActorFrom(r.Context()), mux.Vars(r)["id"], upd)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(auth.ActorFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Car deleted successfully."})
}
