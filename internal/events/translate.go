package events

import (
	models "stokercloud_gateway"
)

// translatedSuffix is appended to a field's key for its annotated sibling.
const translatedSuffix = "_translated"

// Annotate adds "<key>_translated" fields to a shallow copy of every record
// whose string values match a translation-table key. Original fields are
// never mutated or removed. With an empty table the input passes through
// unchanged.
func Annotate(records []models.EventRecord, translations map[string]string) []models.EventRecord {
	if len(translations) == 0 {
		return records
	}

	annotated := make([]models.EventRecord, 0, len(records))
	for _, record := range records {
		out := make(models.EventRecord, len(record))
		for key, value := range record {
			out[key] = value
		}
		for key, value := range record {
			if s, ok := value.(string); ok {
				if text, ok := translations[s]; ok {
					out[key+translatedSuffix] = text
				}
			}
		}
		annotated = append(annotated, out)
	}
	return annotated
}
