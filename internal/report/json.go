package report

import (
	"fmt"
	"os"
	"time"

	"github.com/climetrics/scenreport/internal/analysis"
	"github.com/climetrics/scenreport/internal/encoding"
	apperrors "github.com/climetrics/scenreport/internal/errors"
)

// Document is the machine-readable results file written alongside the
// workbook, for downstream scripting.
type Document struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Dataset     string           `json:"dataset"`
	Result      *analysis.Result `json:"result"`
}

var encoderPool = encoding.NewEncoderPool(4)

// WriteJSON writes the results document.
func WriteJSON(path, datasetPath string, result *analysis.Result) error {
	doc := Document{
		GeneratedAt: time.Now().UTC(),
		Dataset:     datasetPath,
		Result:      result,
	}

	data, err := encoderPool.MarshalIndent(doc)
	if err != nil {
		return apperrors.NewInternalError("failed to encode results document", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
