package api

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"locacar/internal/service"
)

const defaultRecentLimit = 3

type StatsHandler struct {
	service *service.StatsService
	log     *logrus.Logger
}

func NewStatsHandler(svc *service.StatsService, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{service: svc, log: log}
}

func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.AdminStats()
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) ManagerDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.ManagerDashboard()
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func recentLimit(r *http.Request) int {
	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return limit
}

func (h *StatsHandler) RecentClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.RecentClients(recentLimit(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (h *StatsHandler) RecentReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.RecentReservations(recentLimit(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}
