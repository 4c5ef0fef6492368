package dify

import "encoding/json"

// Different workflow configurations put the primary text in different places:
// some expose a "text" output, some a "result", and misconfigured ones return
// arbitrary shapes. Extraction tries each strategy in order and uses the
// first that yields a non-empty string; the last one always succeeds so the
// response is never dropped on the floor.
type extractor func(outputs json.RawMessage) (string, bool)

var extractors = []extractor{
	namedField("text"),
	namedField("result"),
	rawOutputs,
}

func namedField(name string) extractor {
	return func(outputs json.RawMessage) (string, bool) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(outputs, &fields); err != nil {
			return "", false
		}
		var s string
		if err := json.Unmarshal(fields[name], &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	}
}

func rawOutputs(outputs json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(outputs, &s); err == nil {
		return s, true
	}
	return string(outputs), true
}

// ExtractOutput pulls the primary text out of a workflow run's outputs.
func ExtractOutput(outputs json.RawMessage) string {
	for _, extract := range extractors {
		if s, ok := extract(outputs); ok {
			return s
		}
	}
	return ""
}
