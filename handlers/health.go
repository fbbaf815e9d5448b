package handlers

import (
	"fmt"
	"net/http"
)

// Health godoc
// GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok","service":"sigma"}`)
}
