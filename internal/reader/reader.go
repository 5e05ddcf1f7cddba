// Package reader turns intake documents into raw UTF-8 text. It is
// the only boundary the extraction core sees: everything downstream
// operates on the returned string.
package reader

import (
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"
)

// supported maps file extensions to their read strategy.
var supported = map[string]func(path string) (string, error){
	".txt":      readPlain,
	".md":       readPlain,
	".markdown": readPlain,
	".pdf":      readConverted,
	".docx":     readConverted,
	".doc":      readConverted,
	".rtf":      readConverted,
	".html":     readConverted,
	".xlsx":     readSpreadsheet,
}

// Supported reports whether the file's extension has a reader.
func Supported(path string) bool {
	_, ok := supported[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Read extracts text from the document at path. Output is normalized
// to NFC with LF line endings. Unsupported extensions are an error.
func Read(path string) (string, error) {
	read, ok := supported[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", eris.Errorf("reader: unsupported file type %q", filepath.Ext(path))
	}
	text, err := read(path)
	if err != nil {
		return "", err
	}
	return normalize(text), nil
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrap(err, "reader: read file")
	}
	return string(data), nil
}

func readConverted(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", eris.Wrapf(err, "reader: convert %s", filepath.Base(path))
	}
	return res.Body, nil
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}
