package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// Detection is one feature the model identified in the captured image.
// Coordinates are in the model's normalized 0-1000 space; mapping them
// back onto the host map is the caller's concern.
type Detection struct {
	Label        string // "(n) type (pp%)"
	ObjectType   string
	Probability  *float64 // percentage 0-100, nil when the model gave none
	ResultNumber int
	Reason       string
	BoundingBox  []float64 // [x1 y1 x2 y2], empty when only a point was given
	Point        []float64 // [x y], empty when a box was given
}

// DetectionStats summarizes one pass over the detection JSON.
type DetectionStats struct {
	Total             int
	Processed         int
	SkippedConfidence int
	SkippedMissing    int
}

// ProcessDetections walks the parsed detection JSON, drops items that
// are missing required fields or fall below the confidence threshold,
// and numbers the survivors.
func ProcessDetections(value any, confidenceThreshold float64) ([]Detection, DetectionStats) {
	items := extractItems(value)

	var detections []Detection
	stats := DetectionStats{Total: len(items)}

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			stats.SkippedMissing++
			continue
		}

		det, ok := extractDetection(obj)
		if !ok {
			stats.SkippedMissing++
			continue
		}

		if det.Probability != nil && *det.Probability < confidenceThreshold {
			stats.SkippedConfidence++
			continue
		}

		det.ResultNumber = i + 1
		if det.Probability != nil {
			det.Label = fmt.Sprintf("(%d) %s (%.0f%%)", det.ResultNumber, det.ObjectType, *det.Probability)
		} else {
			det.Label = fmt.Sprintf("(%d) %s", det.ResultNumber, det.ObjectType)
		}

		detections = append(detections, det)
		stats.Processed++
	}

	return detections, stats
}

// extractItems unwraps the container shapes models produce: a bare
// list, a wrapper object, or a single detection.
func extractItems(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range []string{"objects", "detections", "features"} {
			if nested, ok := v[key]; ok {
				if list, ok := nested.([]any); ok {
					return list
				}
			}
		}
		return []any{v}
	}
	return nil
}

func extractDetection(obj map[string]any) (Detection, bool) {
	var det Detection

	if value, _, ok := fieldCaseInsensitive(obj, "label", "object_type", "object type"); ok {
		if str, ok := value.(string); ok {
			det.ObjectType = str
		} else if value != nil {
			det.ObjectType = fmt.Sprint(value)
		}
	}

	if value, _, ok := fieldCaseInsensitive(obj, "probability", "confidence", "confidence_score", "confidence score", "prob", "score"); ok {
		det.Probability = parseProbability(value)
	}

	if value, _, ok := fieldCaseInsensitive(obj, "point", "points", "coordinates"); ok {
		if coords := toFloats(value); len(coords) >= 2 {
			det.Point = coords[:2]
		}
	}

	if value, _, ok := fieldCaseInsensitive(obj, "bounding_box", "bounding box", "bbox", "box_2d", "box2d"); ok {
		if coords := toFloats(value); len(coords) >= 4 {
			det.BoundingBox = coords[:4]
		}
	}

	// Alternative coordinate spellings.
	if det.BoundingBox == nil && det.Point == nil {
		if x, y, w, h, ok := floats4(obj, "x", "y", "width", "height"); ok {
			det.BoundingBox = []float64{x, y, x + w, y + h}
		} else if x1, y1, x2, y2, ok := floats4(obj, "xmin", "ymin", "xmax", "ymax"); ok {
			det.BoundingBox = []float64{x1, y1, x2, y2}
		}
	}

	if value, _, ok := fieldCaseInsensitive(obj, "reason", "explanation", "description"); ok {
		if str, ok := value.(string); ok {
			det.Reason = str
		}
	}

	if det.ObjectType == "" || (det.BoundingBox == nil && det.Point == nil) {
		return Detection{}, false
	}
	return det, true
}

// fieldCaseInsensitive looks up the first of names present in obj,
// ignoring key case.
func fieldCaseInsensitive(obj map[string]any, names ...string) (any, string, bool) {
	lower := make(map[string]string, len(obj))
	for key := range obj {
		lower[strings.ToLower(key)] = key
	}
	for _, name := range names {
		if actual, ok := lower[strings.ToLower(name)]; ok {
			return obj[actual], actual, true
		}
	}
	return nil, "", false
}

// parseProbability accepts numbers, 0-1 fractions and strings like
// "85%" or "0.85", normalizing everything to a 0-100 percentage.
func parseProbability(value any) *float64 {
	var probability float64

	switch v := value.(type) {
	case float64:
		probability = v
	case int:
		probability = float64(v)
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		probability = parsed
		if probability <= 1.0 {
			probability *= 100
		}
	default:
		return nil
	}

	return &probability
}

func toFloats(value any) []float64 {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	floats := make([]float64, 0, len(list))
	for _, item := range list {
		num, ok := item.(float64)
		if !ok {
			return nil
		}
		floats = append(floats, num)
	}
	return floats
}

func floats4(obj map[string]any, names ...string) (float64, float64, float64, float64, bool) {
	values := make([]float64, 0, 4)
	for _, name := range names {
		raw, ok := obj[name]
		if !ok {
			return 0, 0, 0, 0, false
		}
		num, ok := raw.(float64)
		if !ok {
			return 0, 0, 0, 0, false
		}
		values = append(values, num)
	}
	return values[0], values[1], values[2], values[3], true
}
