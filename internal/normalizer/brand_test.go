package normalizer

import "testing"

func TestNormalizer_ExtractBrand(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name        string
		cleanedName string
		want        string
	}{
		{"simple match", "leche hacendado desnatada 1l", "hacendado"},
		{"multiword brand", "aceite maestros de hojiblanca virgen 1 l", "maestros de hojiblanca"},
		{"no match sentinel", "leche sin marca 1 l", BrandOther},
		{"alias collapses variant", "croquetas k arginano caseras", "karlos arguinano"},
		{"alias collapses dotted variant", "croquetas k. arguinano caseras", "karlos arguinano"},
		{"canonical spelling kept", "croquetas karlos arguinano caseras", "karlos arguinano"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.ExtractBrand(tt.cleanedName); got != tt.want {
				t.Errorf("ExtractBrand(%q) = %s, want %s", tt.cleanedName, got, tt.want)
			}
		})
	}
}

func TestNormalizer_ExtractBrand_LongestWins(t *testing.T) {
	tables := DefaultTables()
	tables.Brands = []string{"oro", "oro bailen"}
	tables.BrandAliases = map[string]string{}

	n := NewNormalizerWithTables(tables)

	// "oro bailen" contains "oro"; the longer token must win despite
	// being declared later.
	if got := n.ExtractBrand("aceite oro bailen virgen extra"); got != "oro bailen" {
		t.Errorf("ExtractBrand = %s, want oro bailen", got)
	}

	if got := n.ExtractBrand("aceite oro 1 l"); got != "oro" {
		t.Errorf("ExtractBrand = %s, want oro", got)
	}
}

func TestNormalizer_ExtractBrand_Deterministic(t *testing.T) {
	n := NewNormalizer()

	first := n.ExtractBrand("aceite la espanola intenso 1 l")
	for i := 0; i < 10; i++ {
		if got := n.ExtractBrand("aceite la espanola intenso 1 l"); got != first {
			t.Fatalf("ExtractBrand not deterministic: %s then %s", first, got)
		}
	}

	if first != "la espanola" {
		t.Errorf("ExtractBrand = %s, want la espanola", first)
	}
}
