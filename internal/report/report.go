package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ppiankov/costspectre/internal/engine"
)

// Reporter renders a finished report to an output.
type Reporter interface {
	Generate(r *engine.Report) error
}

// JSONReporter writes the report as pretty-printed JSON, the same document
// the trigger contract returns in a 200 body.
type JSONReporter struct {
	Writer io.Writer
}

// Generate writes indented JSON.
func (j *JSONReporter) Generate(r *engine.Report) error {
	enc := json.NewEncoder(j.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
