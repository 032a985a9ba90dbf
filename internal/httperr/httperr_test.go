package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestRespond_MapsTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody HTTPError
	}{
		{
			name:     "not found",
			err:      ErrNotFound("appointment_not_found", "Appointment not found"),
			wantCode: http.StatusNotFound,
			wantBody: HTTPError{Code: "appointment_not_found", Message: "Appointment not found"},
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("cancel: %w", ErrNotFound("appointment_not_found", "Appointment not found")),
			wantCode: http.StatusNotFound,
			wantBody: HTTPError{Code: "appointment_not_found", Message: "Appointment not found"},
		},
		{
			name:     "business without message",
			err:      ErrBusiness("invalid_date"),
			wantCode: http.StatusBadRequest,
			wantBody: HTTPError{Code: "invalid_date", Message: "invalid_date"},
		},
		{
			name:     "store unavailable",
			err:      fmt.Errorf("%w: dial tcp: refused", ErrStoreUnavailable),
			wantCode: http.StatusServiceUnavailable,
			wantBody: HTTPError{Code: "store_unavailable", Message: "Service temporarily unavailable. Please try again."},
		},
		{
			name:     "unexpected hides message",
			err:      errors.New("pq: relation \"appointments\" does not exist"),
			wantCode: http.StatusInternalServerError,
			wantBody: HTTPError{Code: "internal_error", Message: "Server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, zerolog.Nop(), tt.err)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			var got HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if got != tt.wantBody {
				t.Errorf("body = %+v, want %+v", got, tt.wantBody)
			}
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("signup: %w", NewBusiness("user_already_exists", "User already exists"))
	if !IsBusiness(err, "user_already_exists") {
		t.Error("expected wrapped business error to match")
	}
	if IsBusiness(err, "other") {
		t.Error("expected code mismatch to be false")
	}
	if IsNotFound(err) {
		t.Error("business error must not be classified as not found")
	}
}
