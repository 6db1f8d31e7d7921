package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tickerfeed/tickerfeed/internal/store"
)

// recordRequest is the JSON body accepted on create.
type recordRequest struct {
	Symbol string  `json:"tickerSymbol"`
	Name   string  `json:"companyName"`
	Price  float64 `json:"price"`
}

// recordPatch is the JSON body accepted on partial update.
// Only supplied fields change; absent fields keep their stored value.
type recordPatch struct {
	Name  *string  `json:"companyName"`
	Price *float64 `json:"price"`
}

// handleStocks serves the collection route: list and create.
func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listStocks(w)
	case http.MethodPost:
		s.createStock(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleStock serves the per-symbol route: get, patch, delete.
func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimPrefix(r.URL.Path, "/api/stocks/")
	if symbol == "" || strings.Contains(symbol, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getStock(w, r, symbol)
	case http.MethodPatch:
		s.patchStock(w, r, symbol)
	case http.MethodDelete:
		s.deleteStock(w, symbol)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// listStocks returns all current records as JSON.
func (s *Server) listStocks(w http.ResponseWriter) {
	records := s.store.GetAll()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(records); err != nil {
		s.logger.Error("failed to encode stock list", "error", err)
	}
}

// createStock inserts a new record. Duplicate symbols conflict rather than
// overwrite.
func (s *Server) createStock(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	record, err := store.NewRecord(req.Symbol, req.Name, req.Price)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !s.store.Insert(record) {
		http.Error(w, "Symbol already exists", http.StatusConflict)
		return
	}

	s.logger.Info("stock created", "symbol", record.Symbol)
	s.writeJSON(w, http.StatusCreated, record)
}

// getStock returns one record by symbol.
func (s *Server) getStock(w http.ResponseWriter, r *http.Request, symbol string) {
	record, ok := s.store.Get(symbol)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

// patchStock applies a partial update to an existing record. The merged
// result goes back through record normalization before it is committed.
func (s *Server) patchStock(w http.ResponseWriter, r *http.Request, symbol string) {
	var patch recordPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	current, ok := s.store.Get(symbol)
	if !ok {
		http.NotFound(w, r)
		return
	}

	name := current.Name
	if patch.Name != nil {
		name = *patch.Name
	}
	price := current.Price
	if patch.Price != nil {
		price = *patch.Price
	}

	updated, err := store.NewRecord(current.Symbol, name, price)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.store.Replace(updated.Symbol, updated)
	s.logger.Info("stock updated", "symbol", updated.Symbol)
	s.writeJSON(w, http.StatusOK, updated)
}

// deleteStock removes a record. Deleting an absent symbol still succeeds;
// the operation is idempotent.
func (s *Server) deleteStock(w http.ResponseWriter, symbol string) {
	if s.store.Delete(symbol) {
		s.logger.Info("stock deleted", "symbol", symbol)
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes v as a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
