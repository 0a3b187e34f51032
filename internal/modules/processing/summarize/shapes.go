package summarize

import (
	"strings"

	"github.com/tidwall/gjson"
)

// shapeMatcher pulls a summary out of one known response layout. An empty
// return means the layout did not match.
type shapeMatcher func(body gjson.Result) string

// responseShapes are tried in order; the first non-empty match wins.
var responseShapes = []shapeMatcher{
	stringField("summary"),
	stringField("output"),
	stringField("result"),
	stringField("text"),
	firstChoice("text"),
	firstChoice("message.content"),
}

func stringField(name string) shapeMatcher {
	return func(body gjson.Result) string {
		v := body.Get(name)
		if v.Type != gjson.String {
			return ""
		}
		return strings.TrimSpace(v.Str)
	}
}

func firstChoice(path string) shapeMatcher {
	return func(body gjson.Result) string {
		choices := body.Get("choices")
		if !choices.IsArray() {
			return ""
		}
		v := choices.Get("0." + path)
		if v.Type != gjson.String {
			return ""
		}
		return strings.TrimSpace(v.Str)
	}
}

// extractSummary applies responseShapes to a JSON object body.
func extractSummary(raw []byte) (string, bool) {
	if !gjson.ValidBytes(raw) {
		return "", false
	}
	body := gjson.ParseBytes(raw)
	if !body.IsObject() {
		return "", false
	}
	for _, match := range responseShapes {
		if text := match(body); text != "" {
			return text, true
		}
	}
	return "", true
}
