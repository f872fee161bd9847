package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tair/pos-ledger/pkg/apperror"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantRetry  string
		wantItem   string
	}{
		{"validation", apperror.Validation("bad input"), http.StatusBadRequest, "bad input", "", ""},
		{"not found", apperror.NotFound("missing"), http.StatusNotFound, "missing", "", ""},
		{"insufficient stock", apperror.InsufficientStock("P", nil), http.StatusConflict, "insufficient stock for item P", "", "P"},
		{"conflict", apperror.Conflict("in flight"), http.StatusConflict, "in flight", "1", ""},
		{"internal", apperror.Internal("db down", errors.New("dial tcp")), http.StatusInternalServerError, "internal server error", "", ""},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal server error", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Retry-After"); got != tt.wantRetry {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetry)
			}

			var body struct {
				Success bool              `json:"success"`
				Error   string            `json:"error"`
				Data    map[string]string `json:"data"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Error != tt.wantError {
				t.Errorf("body = %+v", body)
			}
			if body.Data["item_id"] != tt.wantItem {
				t.Errorf("item_id = %q, want %q", body.Data["item_id"], tt.wantItem)
			}
		})
	}
}
