package reviews

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"Restaurant,Review,Rating",
		`A,"great food, would return",5`,
		"B,awful,1",
	}, "\n"))

	records, err := LoadCSV(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	want := Record{Arm: "A", Review: "great food, would return", Rating: 5}
	if records[0] != want {
		t.Errorf("record[0] = %+v, want %+v", records[0], want)
	}
}

func TestLoadCSV_CustomArmColumn(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"Place,Review,Rating",
		"A,fine,3",
	}, "\n"))

	records, err := LoadCSV(path, "Place")
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Arm != "A" {
		t.Errorf("arm = %q, want A", records[0].Arm)
	}
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{
			"missing-arm-column",
			"Review,Rating\nfine,3",
			`missing column "Restaurant"`,
		},
		{
			"missing-rating-column",
			"Restaurant,Review\nA,fine",
			`missing column "Rating"`,
		},
		{
			"bad-rating",
			"Restaurant,Review,Rating\nA,fine,notanumber",
			"row 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.content)
			_, err := LoadCSV(path, "")
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("got err %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}
