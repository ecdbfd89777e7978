package output

import (
	"bytes"
	"encoding/json"

	"github.com/jamesainslie/metachk/pkg/metachk/report"
)

// JSONFormatter formats the report as indented JSON for machine consumption.
type JSONFormatter struct{}

// Format writes the formatted report to the buffer. A trailing newline is
// appended so the output is a complete text file on its own.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *report.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	w.Write(data)
	w.WriteByte('\n')
	return nil
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
