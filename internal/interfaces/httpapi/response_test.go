package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
		wantReason string
	}{
		{
			name:       "duplicate slug",
			err:        &tournament.DuplicateError{Key: "slug"},
			wantCode:   http.StatusConflict,
			wantStatus: "ALREADY_EXISTS",
			wantReason: "duplicate",
		},
		{
			name:       "player already registered",
			err:        &tournament.AlreadyRegisteredError{Players: []int32{7}},
			wantCode:   http.StatusConflict,
			wantStatus: "ALREADY_EXISTS",
			wantReason: "alreadyRegistered",
		},
		{
			name:       "registration closed",
			err:        tournament.ErrRegistrationClosed,
			wantCode:   http.StatusBadRequest,
			wantStatus: "FAILED_PRECONDITION",
			wantReason: "registrationWindow",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: tournament=owc", usecase.ErrNotFound),
			wantCode:   http.StatusNotFound,
			wantStatus: "NOT_FOUND",
			wantReason: "notFound",
		},
		{
			name:       "unauthorized",
			err:        usecase.ErrUnauthorized,
			wantCode:   http.StatusUnauthorized,
			wantStatus: "UNAUTHENTICATED",
			wantReason: "unauthorized",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}

			var body googleResponseEnvelope
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if body.Error == nil {
				t.Fatalf("expected error object in response")
			}
			if body.Error.Status != tc.wantStatus {
				t.Fatalf("expected error status %s, got %s", tc.wantStatus, body.Error.Status)
			}
			if len(body.Error.Errors) != 1 || body.Error.Errors[0].Reason != tc.wantReason {
				t.Fatalf("expected reason %s, got %+v", tc.wantReason, body.Error.Errors)
			}
		})
	}
}

func TestWriteError_UnmappedErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("server selection timeout: mongo-0:27017"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || body.Error.Message != "internal server error" {
		t.Fatalf("expected generic internal error, got %+v", body.Error)
	}
}
