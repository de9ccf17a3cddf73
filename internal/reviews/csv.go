package reviews

// #region imports
import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// #endregion

// #region defaults

// Default column names for the review corpus.
const (
	DefaultArmColumn    = "Restaurant"
	DefaultReviewColumn = "Review"
	DefaultRatingColumn = "Rating"
)

// #endregion

// #region load-csv

// LoadCSV reads a review corpus from a CSV file. The header row must contain
// the arm column (DefaultArmColumn when armColumn is empty) plus Review and
// Rating columns. Rows with a malformed rating fail the load with the row
// number in the error.
func LoadCSV(path, armColumn string) ([]Record, error) {
	if armColumn == "" {
		armColumn = DefaultArmColumn
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // validated per row below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	armIdx, ok := cols[armColumn]
	if !ok {
		return nil, fmt.Errorf("corpus %s: missing column %q", path, armColumn)
	}
	reviewIdx, ok := cols[DefaultReviewColumn]
	if !ok {
		return nil, fmt.Errorf("corpus %s: missing column %q", path, DefaultReviewColumn)
	}
	ratingIdx, ok := cols[DefaultRatingColumn]
	if !ok {
		return nil, fmt.Errorf("corpus %s: missing column %q", path, DefaultRatingColumn)
	}

	var records []Record
	for row := 2; ; row++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("corpus %s row %d: %w", path, row, err)
		}
		if len(fields) <= armIdx || len(fields) <= reviewIdx || len(fields) <= ratingIdx {
			return nil, fmt.Errorf("corpus %s row %d: too few fields", path, row)
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(fields[ratingIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("corpus %s row %d: rating: %w", path, row, err)
		}
		records = append(records, Record{
			Arm:    strings.TrimSpace(fields[armIdx]),
			Review: fields[reviewIdx],
			Rating: rating,
		})
	}

	return records, nil
}

// #endregion
