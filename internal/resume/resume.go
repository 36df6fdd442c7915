// Package resume loads the downloadable résumé and its plain-text rendition.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// ErrNotFound is returned when no résumé is configured or the file is missing.
var ErrNotFound = errors.New("resume: not found")

// Resume is a loaded PDF résumé.
type Resume struct {
	Name    string
	Data    []byte
	Pages   int
	Text    string
	ModTime time.Time
}

// Load reads the PDF at path. An empty path yields ErrNotFound.
func Load(path string) (*Resume, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNotFound
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat resume %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume %s: %w", path, err)
	}
	return Parse(filepath.Base(path), data, info.ModTime())
}

// Parse extracts the page count and plain text of a PDF held in memory.
func Parse(name string, data []byte, modTime time.Time) (*Resume, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open resume pdf: %w", err)
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract text from page %d: %w", i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return &Resume{
		Name:    name,
		Data:    data,
		Pages:   numPages,
		Text:    normalize(builder.String()),
		ModTime: modTime,
	}, nil
}

func normalize(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
