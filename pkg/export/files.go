package export

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/philipparndt/gopose/pkg/layout"
)

// WriteFiles writes <base>.pdf and <base>.json next to each other. The two
// writes are independent: a failure in one does not roll back the other.
// With no objects placed the export is silently skipped.
func WriteFiles(l *layout.Layout, base string) error {
	if len(l.Objects) == 0 {
		return nil
	}

	base = strings.TrimSuffix(base, ".pdf")
	base = strings.TrimSuffix(base, ".json")

	var pdfErr, jsonErr error

	pdfFile, err := os.Create(base + ".pdf")
	if err != nil {
		pdfErr = fmt.Errorf("failed to create PDF file: %w", err)
	} else {
		pdfErr = WritePDF(pdfFile, l)
		if closeErr := pdfFile.Close(); pdfErr == nil && closeErr != nil {
			pdfErr = fmt.Errorf("failed to close PDF file: %w", closeErr)
		}
	}

	jsonFile, err := os.Create(base + ".json")
	if err != nil {
		jsonErr = fmt.Errorf("failed to create JSON file: %w", err)
	} else {
		jsonErr = WriteJSON(jsonFile, l)
		if closeErr := jsonFile.Close(); jsonErr == nil && closeErr != nil {
			jsonErr = fmt.Errorf("failed to close JSON file: %w", closeErr)
		}
	}

	return errors.Join(pdfErr, jsonErr)
}
