package errors

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"retail-dashboard/internal/dataset"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{BadRequest("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{NoData("empty"), http.StatusUnprocessableEntity},
		{RateLimit("slow down"), http.StatusTooManyRequests},
		{ServiceUnavailable("later"), http.StatusServiceUnavailable},
		{Internal("oops"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if tt.err.StatusCode != tt.want {
				t.Errorf("StatusCode = %d, want %d", tt.err.StatusCode, tt.want)
			}
		})
	}
}

func TestFromLoad(t *testing.T) {
	formatErr := &dataset.DataFormatError{Path: "sales.csv", Row: 3, Column: "Date", Value: "x", Err: stderrors.New("unrecognized date")}

	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"data format", fmt.Errorf("load: %w", formatErr), CodeDataFormat, http.StatusInternalServerError},
		{"timeout", context.DeadlineExceeded, CodeServiceUnavail, http.StatusServiceUnavailable},
		{"app error passes through", Validation("bad gender"), CodeValidation, http.StatusBadRequest},
		{"other", stderrors.New("disk on fire"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromLoad(tt.err)
			if got.Code != tt.code || got.StatusCode != tt.status {
				t.Errorf("FromLoad() = %s/%d, want %s/%d", got.Code, got.StatusCode, tt.code, tt.status)
			}
		})
	}

	if got := FromLoad(formatErr); got.Details == "" || !dataset.IsDataFormat(got) {
		t.Errorf("data format errors should keep details and their cause: %+v", got)
	}
}

func TestWriteError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	w := httptest.NewRecorder()
	WriteError(w, logger, ValidationWrap(stderrors.New("gender"), "Invalid filter selection"), "req-1")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code      string `json:"code"`
			Details   string `json:"details"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error.Code != string(CodeValidation) || resp.Error.RequestID != "req-1" || resp.Error.Details != "gender" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !bytes.Contains(logs.Bytes(), []byte("level=WARN")) {
		t.Errorf("client errors should log at warn: %s", logs.String())
	}
}

func TestWriteError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), stderrors.New("boom"), "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestWriteSuccessWithHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessWithHeaders(w, map[string]int{"records": 3}, map[string]string{"Cache-Control": "no-store"})

	if w.Header().Get("Cache-Control") != "no-store" {
		t.Error("custom headers should be set")
	}
	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Data["records"] != 3 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestWriteSuccess_UnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]float64{"average_rating": math.NaN()})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != CodeInternal {
		t.Errorf("unexpected response: %+v", resp)
	}
}
