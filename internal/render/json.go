package render

import (
	"fmt"

	"github.com/KaramelBytes/dataloom-cli/internal/cleaner"
	"github.com/KaramelBytes/dataloom-cli/internal/profile"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
	"github.com/KaramelBytes/dataloom-cli/internal/utils"
)

// JSON renders a profile result as an indented JSON payload with the same
// field names the original analysis API used.
type JSON struct{}

var _ profile.Renderer = JSON{}

type jsonPayload struct {
	ProfileID      string          `json:"profile_id"`
	Filename       string          `json:"filename,omitempty"`
	CleaningReport *cleaner.Report `json:"cleaning_report"`
	Statistics     *stats.Bundle   `json:"statistics"`
	Insights       []string        `json:"insights"`
}

// Render marshals the result; non-finite floats inside the statistics bundle
// are emitted as null.
func (JSON) Render(res *profile.Result) (string, error) {
	if res == nil {
		return "", fmt.Errorf("nil profile result")
	}
	b, err := utils.PrettyJSON(jsonPayload{
		ProfileID:      res.ID,
		Filename:       res.SourceName,
		CleaningReport: res.Report,
		Statistics:     res.Stats,
		Insights:       res.Insights,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
