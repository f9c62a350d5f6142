package analysis

import (
	"encoding/json"
	"strings"
)

// ExtractJSON finds the first valid JSON value embedded in the response
// text that looks like detection data, and returns the text with that
// value removed alongside the parsed value. When no valid detection
// JSON exists the original text is returned with a nil value.
func ExtractJSON(text string) (string, any) {
	if text == "" {
		return text, nil
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}

		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var value any
		if err := decoder.Decode(&value); err != nil {
			continue
		}

		if !looksLikeDetections(value) {
			continue
		}

		end := i + int(decoder.InputOffset())
		cleaned := text[:i] + strings.TrimSpace(text[end:])
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
		return strings.TrimSpace(cleaned), value
	}

	return text, nil
}

// looksLikeDetections checks that the parsed value has the detection
// shape: every item carries an object type, a confidence, coordinates
// and a reason, under any of the field spellings the models produce.
func looksLikeDetections(value any) bool {
	switch v := value.(type) {
	case []any:
		if len(v) == 0 {
			return false
		}
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return false
			}
			if !hasDetectionFields(obj) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, key := range []string{"objects", "detections", "features"} {
			if nested, ok := v[key]; ok {
				return looksLikeDetections(nested)
			}
		}
		return hasDetectionFields(v)
	}
	return false
}

func hasDetectionFields(obj map[string]any) bool {
	hasType := hasAnyField(obj, "object_type", "object type", "objecttype", "label")
	hasConfidence := hasAnyField(obj, "confidence_score", "confidence score", "confidence", "prob", "probability", "score")
	hasBox := hasAnyField(obj, "bounding_box", "bounding box", "bbox", "box_2d", "box2d", "point", "points", "coordinates")
	hasReason := hasAnyField(obj, "reason", "explanation", "description")
	return hasType && hasConfidence && hasBox && hasReason
}

func hasAnyField(obj map[string]any, names ...string) bool {
	_, _, ok := fieldCaseInsensitive(obj, names...)
	return ok
}
