package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/plazakit/plaza/pkg/records"
)

// handleRecord resolves a single record reference, permission-checked
// against the requesting session. Search and activity listings on the
// front end use it to hydrate references they only know by type+id.
func (a *app) handleRecord(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if typ == "" || err != nil || id <= 0 {
		http.Error(w, "type and id query parameters are required", http.StatusBadRequest)
		return
	}

	rows := []records.Row{{"RecordType": typ, "RecordID": id}}
	rows, err = a.joiner.Join(r.Context(), rows, records.WithUnset())
	if err != nil {
		a.log.Error("record join failed", slog.String("error", err.Error()))
		http.Error(w, "record lookup failed", http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 || rows[0]["Record"] == nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(rows[0]["Record"])
}
