package scheduling

import (
	"testing"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func TestValidDate(t *testing.T) {
	for _, s := range []string{"2025-03-10", "2024-02-29"} {
		if !ValidDate(s) {
			t.Fatalf("expected %q valid", s)
		}
	}
	for _, s := range []string{"", "2025-3-10", "10/03/2025", "2025-02-30", "2025-03-10T00:00"} {
		if ValidDate(s) {
			t.Fatalf("expected %q invalid", s)
		}
	}
}

func TestValidTime(t *testing.T) {
	for _, s := range []string{"00:00", "09:00", "23:59"} {
		if !ValidTime(s) {
			t.Fatalf("expected %q valid", s)
		}
	}
	for _, s := range []string{"9:00", "24:00", "09:60", "09h00", "09:00:00"} {
		if ValidTime(s) {
			t.Fatalf("expected %q invalid", s)
		}
	}
}

func TestValidateSlot_Codes(t *testing.T) {
	if err := ValidateSlot("2025-13-01", "09:00"); !httperr.IsBusiness(err, httperr.CodeInvalidDate) {
		t.Fatalf("expected invalid_date, got %v", err)
	}
	if err := ValidateSlot("2025-03-10", "9:00"); !httperr.IsBusiness(err, httperr.CodeInvalidTime) {
		t.Fatalf("expected invalid_time, got %v", err)
	}
}

func TestParseLayer(t *testing.T) {
	if l, err := ParseLayer("service"); err != nil || l != LayerService {
		t.Fatalf("expected service layer, got %q %v", l, err)
	}
	if _, err := ParseLayer("vip"); !httperr.IsBusiness(err, httperr.CodeInvalidLayer) {
		t.Fatalf("expected invalid_layer, got %v", err)
	}
}
