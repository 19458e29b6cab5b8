package domain

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// Snapshot is one inventory export: a header row plus one record per item.
// The schema is whatever the fulfillment provider attached to the email, so
// columns are kept as-is and interpreted later by the diff engine.
type Snapshot struct {
	Headers []string
	Records [][]string
}

// DatedSnapshot couples a snapshot with the date of the email that carried
// it. The date is metadata about the capture, not part of the table.
type DatedSnapshot struct {
	Date     time.Time
	Snapshot Snapshot
}

// ParseSnapshotCSV reads a CSV attachment into a Snapshot. The first row is
// taken as the header. Ragged rows are tolerated since vendor exports
// sometimes carry trailing summary lines.
func ParseSnapshotCSV(data []byte) (Snapshot, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read CSV records: %w", err)
	}

	return Snapshot{Headers: headers, Records: records}, nil
}

// EncodeCSV renders the snapshot back into CSV bytes for re-attachment.
func (s Snapshot) EncodeCSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(s.Headers); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(s.Records); err != nil {
		return nil, err
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// NoSalesRunway is the runway label for items that sold nothing this period.
const NoSalesRunway = "N/A (no sales)"

// DiffRow is one item of the snapshot comparison. Transient: built per
// report run and discarded after the report is sent.
type DiffRow struct {
	Item        string
	PreviousQty float64
	CurrentQty  float64
	WeeklySales float64
	RunwayLabel string
}
