package geofence

import (
	"errors"
	"math"
	"testing"

	"github.com/jschady/geodorm/module/core/domain"
)

func TestValidatePoint_Valid(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 90, Lon: 180},
		{Lat: -90, Lon: -180},
		{Lat: 40.3430, Lon: -74.6514},
	}
	for _, p := range points {
		if err := ValidatePoint(p); err != nil {
			t.Errorf("ValidatePoint(%v): unexpected error: %v", p, err)
		}
	}
}

func TestValidatePoint_Invalid(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 90.001, Lon: 0},
		{Lat: -91, Lon: 0},
		{Lat: 0, Lon: 180.5},
		{Lat: 0, Lon: -181},
		{Lat: math.NaN(), Lon: 0},
		{Lat: 0, Lon: math.NaN()},
		{Lat: math.Inf(1), Lon: 0},
		{Lat: 0, Lon: math.Inf(-1)},
	}
	for _, p := range points {
		err := ValidatePoint(p)
		if err == nil {
			t.Errorf("ValidatePoint(%v): expected error", p)
			continue
		}
		if !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("ValidatePoint(%v): expected ErrInvalidCoordinate, got %v", p, err)
		}
	}
}

func TestDistance_Identity(t *testing.T) {
	p := domain.GeoPoint{Lat: 40.3430, Lon: -74.6514}
	d, err := Distance(p, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d > 1e-6 {
		t.Errorf("expected ~0, got %f", d)
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := domain.GeoPoint{Lat: 40.3430, Lon: -74.6514}
	b := domain.GeoPoint{Lat: -6.2088, Lon: 106.8456}

	ab, err := Distance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Distance(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(ab-ba) > 1e-6*ab {
		t.Errorf("expected symmetric distances, got %f and %f", ab, ba)
	}
}

func TestDistance_OneDegreeAtEquator(t *testing.T) {
	// one degree of longitude at the equator ~ 111195m
	d, err := Distance(domain.GeoPoint{Lat: 0, Lon: 0}, domain.GeoPoint{Lat: 0, Lon: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const expected = 111195.0
	if math.Abs(d-expected) > expected*0.005 {
		t.Errorf("expected ~%f within 0.5%%, got %f", expected, d)
	}
}

func TestDistance_InvalidInput(t *testing.T) {
	good := domain.GeoPoint{Lat: 0, Lon: 0}
	bad := domain.GeoPoint{Lat: 91, Lon: 0}

	if _, err := Distance(bad, good); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate for first arg, got %v", err)
	}
	if _, err := Distance(good, bad); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate for second arg, got %v", err)
	}
}
