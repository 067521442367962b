package catalogtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticTableSourceSetRowsBumpsFingerprint(t *testing.T) {
	src := NewStaticTableSource("mem", []string{"Nama_Makanan", "Kalori_kcal"}, []string{"Nasi", "200"})
	ctx := context.Background()

	fp1, _ := src.Fingerprint(ctx)
	src.SetRows([]string{"Tahu", "80"})
	fp2, _ := src.Fingerprint(ctx)
	assert.NotEqual(t, fp1, fp2)

	table, err := src.ReadTable(ctx)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Tahu", table.Rows[0].Cells[0])
	assert.Equal(t, 1, src.Reads())
}
