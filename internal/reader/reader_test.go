package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("doc.txt"))
	assert.True(t, Supported("doc.MD"))
	assert.True(t, Supported("doc.pdf"))
	assert.True(t, Supported("doc.xlsx"))
	assert.False(t, Supported("doc.png"))
	assert.False(t, Supported("doc"))
}

func TestRead_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intake.txt")
	require.NoError(t, os.WriteFile(path, []byte("Name: John Smith\r\nSSN: 123-45-6789\r"), 0o644))

	text, err := Read(path)
	require.NoError(t, err)

	// Line endings are folded to LF.
	assert.Equal(t, "Name: John Smith\nSSN: 123-45-6789\n", text)
}

func TestRead_NormalizesToNFC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intake.txt")

	// "é" as combining sequence e + U+0301.
	require.NoError(t, os.WriteFile(path, []byte("Name: René Dupont"), 0o644))

	text, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Name: René Dupont", text)
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("document.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}

	path := filepath.Join(t.TempDir(), "intake.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestRead_Spreadsheet(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"Name", "John Smith"},
		{"SSN", "123-45-6789"},
		{},
	})

	text, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Name\tJohn Smith\nSSN\t123-45-6789\n", text)
}
