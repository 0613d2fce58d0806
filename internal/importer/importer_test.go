package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRows_CSV(t *testing.T) {
	in := "value,label\nGo,Go\nPython,Python 3\n"
	rows, err := Rows(strings.NewReader(in), "skills.csv")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Go", "Go"}, rows[0])
	assert.Equal(t, []string{"Python", "Python 3"}, rows[1])
}

func TestRows_CSVWithoutHeader(t *testing.T) {
	rows, err := Rows(strings.NewReader("Mumbai\nPune\n"), "cities.csv")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mumbai", rows[0][0])
}

func TestRows_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"value", "label"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"B.Tech", "Bachelor of Technology"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := Rows(&buf, "degrees.xlsx")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"B.Tech", "Bachelor of Technology"}, rows[0])
}

func TestRows_UnsupportedFormat(t *testing.T) {
	_, err := Rows(strings.NewReader("x"), "skills.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
