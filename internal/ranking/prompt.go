package ranking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// SystemInstruction frames the oracle's role for every request.
const SystemInstruction = "You are a donation matching assistant. Considering the donated food " +
	"and each recipient's notes, recommend the most suitable recipients. " +
	"If no recipient is suitable, return an empty array."

const promptText = `A food donation and the nearest recipients, ordered by distance, are listed below.

[Donation]
Food: {{.DonationName}}

[Recipients (JSON)]
{{.CandidatesJSON}}

[Task]
Considering the donation and each recipient's notes, recommend at most {{.Max}} of the recipients above.
Return an empty array [] if none are suitable.
Respond with a JSON array only, in exactly this form:
[
  {"id": "<id of the chosen recipient>", "reason": "<why this recipient fits>"}
]
({{.Max}} entries at most, zero is allowed)`

var promptTemplate = template.Must(template.New("ranking").Option("missingkey=error").Parse(promptText))

type promptData struct {
	DonationName   string
	CandidatesJSON string
	Max            int
}

// BuildPrompt renders the ranking prompt for req. The output depends only on
// the request, so equal requests produce byte-identical prompts.
func BuildPrompt(req Request) (string, error) {
	name := strings.TrimSpace(req.DonationName)
	if name == "" {
		return "", ErrEmptyDonationName
	}

	candidates := req.Candidates
	if candidates == nil {
		candidates = []Candidate{}
	}
	encoded, err := json.Marshal(candidates)
	if err != nil {
		return "", fmt.Errorf("failed to encode candidates: %w", err)
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, promptData{
		DonationName:   name,
		CandidatesJSON: string(encoded),
		Max:            MaxRecommendations,
	}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
