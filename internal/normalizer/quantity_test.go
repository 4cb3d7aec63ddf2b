package normalizer

import "testing"

func TestNormalizer_ExtractQuantity(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name          string
		cleanedName   string
		category      string
		wantPacks     int
		wantMagnitude float64
		wantUnit      string
	}{
		{"liters stay liters", "aceite de oliva suave 1.5 l", "aceite_de_oliva", 1, 1.5, "l"},
		{"milliliters to liters", "aceite de oliva virgen 500 ml", "aceite_de_oliva", 1, 0.5, "l"},
		{"liter word abbreviated", "aceite de girasol 1 litro", "aceite_de_girasol", 1, 1.0, "l"},
		{"comma decimal separator", "aceite de oliva 0,75 l", "aceite_de_oliva", 1, 0.75, "l"},
		{"grams stay grams", "leche en polvo 250 g", "leche", 1, 250, "g"},
		{"gr variant", "leche en polvo 250 gr", "leche", 1, 250, "g"},
		{"kilograms to grams", "leche en polvo 1 kg", "leche", 1, 1000, "g"},
		{"centiliters to liters", "leche entera 75 cl", "leche", 1, 0.75, "l"},
		{"pack multiplied", "leche entera 6 x 1 l", "leche", 6, 1.0, "l"},
		{"two digit pack", "leche entera 12 x 1 l", "leche", 12, 1.0, "l"},
		{"pack with fractional size", "leche semidesnatada 6 x 1,5 l", "leche", 6, 1.5, "l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.ExtractQuantity(tt.cleanedName, tt.category)

			if got.Packs != tt.wantPacks {
				t.Errorf("Packs = %d, want %d", got.Packs, tt.wantPacks)
			}

			if got.Magnitude != tt.wantMagnitude {
				t.Errorf("Magnitude = %v, want %v", got.Magnitude, tt.wantMagnitude)
			}

			if got.Unit != tt.wantUnit {
				t.Errorf("Unit = %s, want %s", got.Unit, tt.wantUnit)
			}
		})
	}
}

func TestNormalizer_ExtractQuantity_Defaults(t *testing.T) {
	n := NewNormalizer()

	// Unknown category: no pattern, everything defaulted.
	got := n.ExtractQuantity("mantequilla 250 g", "mantequilla")
	if !got.PacksDefaulted || !got.MagnitudeDefaulted || !got.UnitDefaulted {
		t.Errorf("unknown category should default all fields, got %+v", got)
	}

	if got.Packs != 1 || got.Magnitude != 1.0 || got.Unit != "" {
		t.Errorf("defaults = (%d, %v, %q), want (1, 1.0, \"\")", got.Packs, got.Magnitude, got.Unit)
	}

	// Known category, no quantity token in the name.
	got = n.ExtractQuantity("aceite de oliva virgen extra", "aceite_de_oliva")
	if !got.PacksDefaulted || !got.MagnitudeDefaulted || !got.UnitDefaulted {
		t.Errorf("pattern miss should default all fields, got %+v", got)
	}
}

func TestNormalizer_ExtractQuantity_DefaultedFlags(t *testing.T) {
	n := NewNormalizer()

	// Magnitude and unit parsed, pack count defaulted: the flag
	// distinguishes this from an explicit single pack.
	got := n.ExtractQuantity("leche entera 1 l", "leche")

	if got.MagnitudeDefaulted {
		t.Error("MagnitudeDefaulted = true for parsed magnitude")
	}

	if got.UnitDefaulted {
		t.Error("UnitDefaulted = true for parsed unit")
	}

	if !got.PacksDefaulted {
		t.Error("PacksDefaulted = false without an explicit pack token")
	}

	got = n.ExtractQuantity("leche entera 6 x 1 l", "leche")
	if got.PacksDefaulted {
		t.Error("PacksDefaulted = true for explicit pack token")
	}
}
