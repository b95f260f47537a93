package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/relpack/relpack/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	is1 := domain.NewInternedString("aarch64-apple-ios")
	is2 := domain.NewInternedString("aarch64-apple-ios")

	// Identical strings intern to the same value
	if is1 != is2 {
		t.Errorf("Expected interned values to be equal for identical strings")
	}

	if is1.String() != "aarch64-apple-ios" {
		t.Errorf("Expected String() to return %q, got %q", "aarch64-apple-ios", is1.String())
	}
}

func TestInternedString_ZeroValue(t *testing.T) {
	var is domain.InternedString
	if is.String() != "" {
		t.Errorf("Expected zero value to render as empty string, got %q", is.String())
	}
}

func TestInternedStringJSON(t *testing.T) {
	t.Run("Marshal and Unmarshal preserve string value", func(t *testing.T) {
		original := domain.NewInternedString("x86_64-pc-windows-gnu")

		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Failed to marshal InternedString: %v", err)
		}

		expectedJSON := `"x86_64-pc-windows-gnu"`
		if string(data) != expectedJSON {
			t.Errorf("Expected JSON %q, got %q", expectedJSON, string(data))
		}

		var unmarshaled domain.InternedString
		if err := json.Unmarshal(data, &unmarshaled); err != nil {
			t.Fatalf("Failed to unmarshal InternedString: %v", err)
		}

		if unmarshaled.String() != original.String() {
			t.Errorf("Expected unmarshaled string %q, got %q", original.String(), unmarshaled.String())
		}
	})

	t.Run("Marshal and Unmarshal in struct", func(t *testing.T) {
		type report struct {
			Triple domain.InternedString `json:"triple"`
		}

		original := report{Triple: domain.NewInternedString("armv7-linux-androideabi")}

		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Failed to marshal struct: %v", err)
		}

		expectedJSON := `{"triple":"armv7-linux-androideabi"}`
		if string(data) != expectedJSON {
			t.Errorf("Expected JSON %q, got %q", expectedJSON, string(data))
		}

		var unmarshaled report
		if err := json.Unmarshal(data, &unmarshaled); err != nil {
			t.Fatalf("Failed to unmarshal struct: %v", err)
		}

		if unmarshaled.Triple.String() != original.Triple.String() {
			t.Errorf("Expected unmarshaled triple %q, got %q", original.Triple.String(), unmarshaled.Triple.String())
		}
	})
}
