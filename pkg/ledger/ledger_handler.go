package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ManualTransactionDTO struct {
	ID          int       `json:"id"`
	Amount      float64   `json:"amount"`
	OccurredAt  time.Time `json:"occurredAt"`
	Description string    `json:"description"`
}

type addTransactionDTO struct {
	Amount      float64 `json:"amount"`
	Date        string  `json:"date,omitempty"`
	Time        string  `json:"time,omitempty"`
	Description string  `json:"description"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) Add(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding manual transaction")
	w.Header().Set("Content-Type", "application/json")

	var dto addTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transaction, err := handler.service.Add(r.Context(), dto.Amount, dto.Date, dto.Time, dto.Description)
	if err != nil {
		if errors.Is(err, ErrEmptyDescription) || errors.Is(err, ErrInvalidTimestamp) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(transaction)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(r.Context(), int(transactionId)); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	transactions, err := handler.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ManualTransactionDTO, 0, len(transactions))
	for _, transaction := range transactions {
		dtos = append(dtos, toDTO(transaction))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toDTO(transaction ManualTransaction) ManualTransactionDTO {
	return ManualTransactionDTO{
		ID:          transaction.ID,
		Amount:      transaction.Amount,
		OccurredAt:  transaction.OccurredAt,
		Description: transaction.Description,
	}
}
