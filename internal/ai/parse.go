package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrParseFailed = errors.New("parse_failed")

// ParseImpact extracts the first JSON object from model output. Gemini often
// wraps JSON in markdown fences or leading prose, so we slice from the first
// '{' to the last '}' before unmarshalling.
func ParseImpact(text string) (TreeImpact, error) {
	open := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if open < 0 || end <= open {
		return TreeImpact{}, fmt.Errorf("%w: no json object found", ErrParseFailed)
	}
	var impact TreeImpact
	if err := json.Unmarshal([]byte(text[open:end+1]), &impact); err != nil {
		return TreeImpact{}, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if impact.CO2Kg <= 0 || impact.O2LPerDay <= 0 || impact.AreaM2 <= 0 {
		return TreeImpact{}, fmt.Errorf("%w: non-positive estimate", ErrParseFailed)
	}
	return impact, nil
}
