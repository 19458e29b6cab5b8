package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshotCSV(t *testing.T) {
	data := []byte("Item Name,On Hand\nWidget A,100\nWidget B,50\n")

	snapshot, err := ParseSnapshotCSV(data)

	require.NoError(t, err)
	assert.Equal(t, []string{"Item Name", "On Hand"}, snapshot.Headers)
	require.Len(t, snapshot.Records, 2)
	assert.Equal(t, []string{"Widget A", "100"}, snapshot.Records[0])
}

func TestParseSnapshotCSV_ToleratesRaggedRows(t *testing.T) {
	data := []byte("Item Name,On Hand,Reserved\nWidget A,100,5\nTotal: 100\n")

	snapshot, err := ParseSnapshotCSV(data)

	require.NoError(t, err)
	require.Len(t, snapshot.Records, 2)
	assert.Equal(t, []string{"Total: 100"}, snapshot.Records[1])
}

func TestParseSnapshotCSV_Empty(t *testing.T) {
	_, err := ParseSnapshotCSV([]byte(""))

	assert.Error(t, err)
}

func TestSnapshot_EncodeCSV(t *testing.T) {
	snapshot := Snapshot{
		Headers: []string{"SKU", "Qty"},
		Records: [][]string{{"A", "10"}, {"B, with comma", "5"}},
	}

	data, err := snapshot.EncodeCSV()

	require.NoError(t, err)
	assert.Equal(t, "SKU,Qty\nA,10\n\"B, with comma\",5\n", string(data))
}

func TestLedger_Total(t *testing.T) {
	ledger := Ledger{
		{Amount: 100, Source: SourceBrex},
		{Amount: 250.50, Source: SourceMercury},
	}

	assert.InDelta(t, 350.50, ledger.Total(), 0.001)
	assert.Equal(t, 0.0, Ledger{}.Total())
}

func TestLedger_BySource(t *testing.T) {
	ledger := Ledger{
		{Description: "AWS", Source: SourceBrex},
		{Description: "Gusto", Source: SourceMercury},
		{Description: "Figma", Source: SourceBrex},
	}

	brexRows := ledger.BySource(SourceBrex)

	assert.Len(t, brexRows, 2)
	assert.Equal(t, "AWS", brexRows[0].Description)
	assert.Equal(t, "Figma", brexRows[1].Description)
	assert.Empty(t, ledger.BySource(SourceRippling))
}
