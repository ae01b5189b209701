package report

import (
	"encoding/json"

	"github.com/yildizm/reqlog/internal/logset"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// SetOutput is the JSON shape of one request set
type SetOutput struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	Severity  string   `json:"severity"`
	Lines     []string `json:"lines"`
}

func (f *jsonFormatter) Format(sets []logset.Set, _ logset.Stats) ([]byte, error) {
	output := make([]SetOutput, 0, len(sets))
	for _, set := range sets {
		lines := make([]string, 0, set.Len())
		for _, line := range set.Lines {
			lines = append(lines, line.Text)
		}
		output = append(output, SetOutput{
			ID:        set.ID(),
			Timestamp: set.First().Timestamp,
			Severity:  set.Severity().String(),
			Lines:     lines,
		})
	}

	return json.MarshalIndent(output, "", "  ")
}
