package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/enginequip/quotation-backend/internal/parts"
)

type stubPartsService struct {
	results []parts.Part
	err     error
	query   string
}

func (s *stubPartsService) Search(ctx context.Context, query string) ([]parts.Part, error) {
	s.query = query
	return s.results, s.err
}

func TestPartsSearch(t *testing.T) {
	svc := &stubPartsService{results: []parts.Part{{ID: 2, PartNo: "P002", PartName: "Hydraulic Pump", Price: decimal.NewFromInt(7500)}}}
	handler := PartsSearch(svc, testLogger())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/parts/search?q=pump", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.query != "pump" {
		t.Fatalf("expected query pump got %q", svc.query)
	}

	var envelope struct {
		Data struct {
			Parts []parts.Part `json:"parts"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Parts) != 1 || envelope.Data.Parts[0].PartNo != "P002" {
		t.Fatalf("expected one matching part got %+v", envelope.Data.Parts)
	}
}

func TestPartsSearchBlankQueryReturnsEmptyList(t *testing.T) {
	handler := PartsSearch(&stubPartsService{}, testLogger())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/parts/search", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Parts []parts.Part `json:"parts"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Parts == nil {
		t.Fatalf("expected empty list, not null")
	}
}
