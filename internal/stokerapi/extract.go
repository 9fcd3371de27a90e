package stokerapi

import (
	"sort"

	models "stokercloud_gateway"
)

// Candidate field names checked, in order, when the event payload is an
// object rather than a bare array.
var eventFieldCandidates = []string{"events", "eventdata", "data", "items", "rows", "log"}

// extractStrategy attempts to pull an event list out of a loosely-typed
// payload. It reports false when the shape does not apply, so the next
// strategy gets a chance.
type extractStrategy func(payload any) ([]models.EventRecord, bool)

// extractStrategies is evaluated in sequence; the first applicable strategy
// wins. The order is part of the contract.
var extractStrategies = []extractStrategy{
	eventsFromArray,
	eventsFromCandidateField,
	eventsFromFirstObjectArray,
}

// ExtractEvents pulls the event record list out of whatever shape the vendor
// served. Non-object elements inside the chosen array are discarded; a
// payload with no recognizable list yields an empty slice.
func ExtractEvents(payload any) []models.EventRecord {
	for _, strategy := range extractStrategies {
		if events, ok := strategy(payload); ok {
			return events
		}
	}
	return []models.EventRecord{}
}

// eventsFromArray applies when the payload itself is the event array.
func eventsFromArray(payload any) ([]models.EventRecord, bool) {
	arr, ok := payload.([]any)
	if !ok {
		return nil, false
	}
	return onlyRecords(arr), true
}

// eventsFromCandidateField checks the known field names in order and takes
// the first whose value is an array.
func eventsFromCandidateField(payload any) ([]models.EventRecord, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range eventFieldCandidates {
		if arr, ok := obj[key].([]any); ok {
			return onlyRecords(arr), true
		}
	}
	return nil, false
}

// eventsFromFirstObjectArray scans the remaining object values for the first
// array holding at least one object element. Keys are visited in sorted
// order so the fallback stays deterministic.
func eventsFromFirstObjectArray(payload any) ([]models.EventRecord, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		arr, ok := obj[key].([]any)
		if !ok {
			continue
		}
		if records := onlyRecords(arr); len(records) > 0 {
			return records, true
		}
	}
	return nil, false
}

// onlyRecords keeps the object elements of arr as event records.
func onlyRecords(arr []any) []models.EventRecord {
	records := make([]models.EventRecord, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, models.EventRecord(obj))
		}
	}
	return records
}
