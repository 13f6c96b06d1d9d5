package aisuggest

import "fmt"

const systemPrompt = `
You generate measurable key results for an OKR tracking application.

Given an objective, propose key results that are **specific, measurable and
realistic** for one quarter.

Rules:
1. Each key result has:
   - "description": a short, action-oriented statement of what to achieve
   - "target": the measurable goal, as a plain number or a short value like "50ms" or "95%"
2. Targets must be quantifiable; never propose vague targets like "better" or "more".
3. Descriptions must not repeat the objective verbatim.
4. Always return **pure, valid JSON**, with no text outside the JSON.

Expected JSON format:

[
  {
    "description": "<key result description>",
    "target": "<measurable target>"
  }
]
`

func BuildUserPrompt(req SuggestionRequest) string {
	qty := req.Quantity
	if qty <= 0 {
		qty = 3
	}
	if qty > 10 {
		qty = 10
	}

	return fmt.Sprintf(
		"Propose %d key results for the objective %q. "+
			"Follow the format from the system prompt exactly; each entry needs a description and a measurable target.",
		qty, req.Objective,
	)
}
