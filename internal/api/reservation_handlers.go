package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"locacar/internal/auth"
	"locacar/internal/entities"
	"locacar/internal/service"
)

type ReservationHandler struct {
	service *service.ReservationService
	log     *logrus.Logger
}

func NewReservationHandler(svc *service.ReservationService, log *logrus.Logger) *ReservationHandler {
	return &ReservationHandler{service: svc, log: log}
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.List()
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	reservation, err := h.service.Create(auth.ActorFrom(r.Context()), req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, reservation)
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entities.ReservationUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, h.log, err)
		return
	}
	reservation, err := h.service.Update(auth.ActorFrom(r.Context()), mux.Vars(r)["id"], upd)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, reservation)
}

// UpdateStatus drives the reservation lifecycle and its car side effects.
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req entities.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	reservation, err := h.service.TransitionStatus(auth.ActorFrom(r.Context()), mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(auth.ActorFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Reservation deleted successfully."})
}
