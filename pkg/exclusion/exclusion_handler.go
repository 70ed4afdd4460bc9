package exclusion

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) Exclude(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionId := vars["transactionId"]
	if transactionId == "" {
		http.Error(w, "Missing transaction id", http.StatusBadRequest)
		return
	}

	log.Debugf("Excluding transaction %s from spend totals", transactionId)
	if err := handler.service.Exclude(r.Context(), transactionId); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) Include(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionId := vars["transactionId"]
	if transactionId == "" {
		http.Error(w, "Missing transaction id", http.StatusBadRequest)
		return
	}

	log.Debugf("Including transaction %s back into spend totals", transactionId)
	if err := handler.service.Include(r.Context(), transactionId); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	excluded, err := handler.service.All(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ids := make([]string, 0, len(excluded))
	for id := range excluded {
		ids = append(ids, id)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ids); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
