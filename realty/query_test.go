package realty

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestBuildSearchBodyRequiresGeoScope(t *testing.T) {
	_, err := BuildSearchBody(SearchFilter{})
	if !errors.Is(err, ErrGeoScopeRequired) {
		t.Fatalf("expected ErrGeoScopeRequired, got %v", err)
	}
	_, err = BuildSearchBody(SearchFilter{City: "  ", StateCode: " "})
	if !errors.Is(err, ErrGeoScopeRequired) {
		t.Fatalf("expected ErrGeoScopeRequired for blank fields, got %v", err)
	}
}

func TestBuildSearchBodyStateOnly(t *testing.T) {
	body, err := BuildSearchBody(SearchFilter{StateCode: "CA"})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if body.StateCode != "CA" {
		t.Fatalf("expected state_code CA, got %q", body.StateCode)
	}
	if body.City != "" {
		t.Fatalf("expected no city, got %q", body.City)
	}
}

func TestBuildSearchBodyCityOnly(t *testing.T) {
	body, err := BuildSearchBody(SearchFilter{City: "Los Angeles"})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if body.City != "Los Angeles" {
		t.Fatalf("expected city, got %q", body.City)
	}
	if body.StateCode != "" {
		t.Fatalf("expected no state_code, got %q", body.StateCode)
	}
}

func TestBuildSearchBodyFullFilter(t *testing.T) {
	body, err := BuildSearchBody(SearchFilter{City: "LA", StateCode: "CA", MaxPrice: 500000, PropertyType: "condo"})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if body.City != "LA" || body.StateCode != "CA" {
		t.Fatalf("unexpected geo scope %q/%q", body.City, body.StateCode)
	}
	if body.PriceMax != 500000 {
		t.Fatalf("expected price_max 500000, got %v", body.PriceMax)
	}
	if len(body.HomeType) != 1 || body.HomeType[0] != "condo" {
		t.Fatalf("expected home_type [condo], got %v", body.HomeType)
	}
}

func TestBuildSearchBodyIgnoresNonPositivePrice(t *testing.T) {
	body, err := BuildSearchBody(SearchFilter{StateCode: "TX", MaxPrice: -1})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if body.PriceMax != 0 {
		t.Fatalf("expected no price_max, got %v", body.PriceMax)
	}
}

func TestSearchBodyWireConstants(t *testing.T) {
	body, err := BuildSearchBody(SearchFilter{StateCode: "CA"})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(raw)
	for _, want := range []string{
		`"limit":50`,
		`"offset":0`,
		`"status":["for_sale","ready_to_build"]`,
		`"sort":{"direction":"desc","field":"list_date"}`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("encoded body missing %s: %s", want, s)
		}
	}
	if strings.Contains(s, `"city"`) {
		t.Fatalf("state-only body should omit city: %s", s)
	}
}

func TestDefaultFeedBody(t *testing.T) {
	body := DefaultFeedBody("90004")
	if body.PostalCode != "90004" {
		t.Fatalf("expected postal_code 90004, got %q", body.PostalCode)
	}
	if body.Limit != 50 || len(body.Status) != 2 {
		t.Fatalf("default feed lost fixed constants: %+v", body)
	}
}
