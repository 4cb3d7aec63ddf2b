package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func sampleRows() []Row {
	return []Row{
		{
			Date:        "2024-11-14",
			Amount:      "1.25",
			ProductName: "leche vaca desnatada",
			Brand:       "hacendado",
			Packs:       1,
			Magnitude:   1.0,
			Units:       "l",
			Subcategory: "vaca",
			Distinction: "desnatada",
			Category:    "leche",
			Supermarket: "mercadona",
			URL:         "https://super.facua.org/mercadona/leche/1234/",
		},
		{
			Date:        "2024-11-15",
			Amount:      "1.30",
			ProductName: "leche vaca desnatada",
			Brand:       "hacendado",
			Packs:       1,
			Magnitude:   1.0,
			Units:       "l",
			Subcategory: "vaca",
			Distinction: "desnatada",
			Category:    "leche",
			Supermarket: "mercadona",
			URL:         "https://super.facua.org/mercadona/leche/1234/",
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}

	return records
}

func TestWriter_Save(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, "final.csv")

	if err := w.Save(sampleRows(), "mercadona", "leche", "leche hacendado desnatada 1l"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(base, "mercadona", "leche", "leche hacendado desnatada 1l.csv")

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d records", len(records))
	}

	if records[0][0] != "date" || records[0][1] != "price" {
		t.Errorf("unexpected header: %v", records[0])
	}

	if records[1][1] != "1.25" {
		t.Errorf("price = %s, want 1.25", records[1][1])
	}

	if records[1][9] != "false" {
		t.Errorf("eco = %s, want false", records[1][9])
	}
}

func TestWriter_SaveFinal(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, "final.csv")

	if err := w.SaveFinal(sampleRows()); err != nil {
		t.Fatalf("SaveFinal failed: %v", err)
	}

	records := readCSV(t, filepath.Join(base, "final.csv"))
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d records", len(records))
	}
}
