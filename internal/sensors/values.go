package sensors

import (
	"encoding/json"
	"strconv"

	models "stokercloud_gateway"
)

// findID locates the record with the wanted id inside a {id, value} list.
func findID(items any, wantedID string) map[string]any {
	arr, ok := items.([]any)
	if !ok {
		return nil
	}
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if scalarString(obj["id"]) == wantedID {
			return obj
		}
	}
	return nil
}

// listValue reads the value of the record with the given id from one of the
// snapshot's {id, value} sections (weatherdata, boilerdata, ...).
func listValue(data models.ControllerSnapshot, section, wantedID string) any {
	item := findID(data[section], wantedID)
	if item == nil {
		return nil
	}
	return item["value"]
}

// frontValue reads a value from the frontdata section by id.
func frontValue(data models.ControllerSnapshot, frontID string) any {
	item := findID(data["frontdata"], frontID)
	if item == nil {
		return nil
	}
	return item["value"]
}

// leftOutputValue reads the "val" of a named output from the leftoutput
// sub-object.
func leftOutputValue(data models.ControllerSnapshot, outputID string) any {
	leftoutput, ok := data["leftoutput"].(map[string]any)
	if !ok {
		return nil
	}
	output, ok := leftoutput[outputID].(map[string]any)
	if !ok {
		return nil
	}
	return output["val"]
}

// asFloat coerces the vendor's mixed numeric encodings to float64, treating
// nil, "" and "N/A" as absent. Returns nil when the value is not numeric.
func asFloat(value any) any {
	switch t := value.(type) {
	case nil:
		return nil
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return nil
	case string:
		if t == "" || t == "N/A" {
			return nil
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
		return nil
	default:
		return nil
	}
}

// scalarString renders a decoded JSON scalar as text, empty when absent.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
