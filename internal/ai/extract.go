package ai

import (
	"encoding/json"
	"errors"
)

// ErrUnrecognizedPayload marks a syntactically valid response whose
// shape is none of the accepted ones. Callers treat it like any other
// generation failure.
var ErrUnrecognizedPayload = errors.New("unrecognized generation payload shape")

// generated is the record both accepted shapes are built from: the
// service returns either an array of these or a single one, with the
// text under generated_text or summary_text depending on the model.
type generated struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
}

func (g generated) text() string {
	if g.GeneratedText != "" {
		return g.GeneratedText
	}
	return g.SummaryText
}

// Extract pulls generated text out of a response payload. Each
// accepted shape is tried with a strict decode; anything else is an
// explicit ErrUnrecognizedPayload, not a guess.
func Extract(payload []byte) (string, error) {
	var list []generated
	if err := json.Unmarshal(payload, &list); err == nil {
		if len(list) > 0 && list[0].text() != "" {
			return list[0].text(), nil
		}
		return "", ErrUnrecognizedPayload
	}

	var single generated
	if err := json.Unmarshal(payload, &single); err == nil && single.text() != "" {
		return single.text(), nil
	}

	return "", ErrUnrecognizedPayload
}
