package ai

import (
	"fmt"
	"strings"
)

// maxUserInstructions bounds the free-text instructions a caller can
// append to the analysis prompt.
const maxUserInstructions = 1500

// SystemPrompt frames the model as an FP&A analyst over CSV data.
const SystemPrompt = `You are an FP&A analyst. You will receive sheet data as CSV with the first row as headers.
Return:
- An executive summary (4-6 lines).
- 5 key metrics as JSON (keys with numeric values where applicable).
- Notable anomalies and insights.
- Actionable recommendations as bullet points.
Be concise and clear. If relevant columns are missing, say so.`

// BuildAnalysisPrompt assembles the user prompt for one analysis call:
// the tab and range being analyzed, the row cap, optional caller
// instructions (truncated), and the CSV projection itself.
func BuildAnalysisPrompt(tab, a1Range string, maxRows int, instructions, csv string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sheet: %s\n", tab)
	fmt.Fprintf(&b, "Range: %s\n", a1Range)
	fmt.Fprintf(&b, "Rows analyzed (max %d):\n", maxRows)
	if instructions != "" {
		if len(instructions) > maxUserInstructions {
			instructions = instructions[:maxUserInstructions]
		}
		fmt.Fprintf(&b, "Additional user instructions: %s\n", instructions)
	}
	b.WriteString("CSV:\n")
	b.WriteString(csv)
	return strings.TrimSpace(b.String())
}
