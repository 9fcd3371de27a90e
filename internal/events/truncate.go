package events

import (
	"encoding/json"

	models "stokercloud_gateway"
)

// DefaultByteBudget matches the host attribute-size ceiling the published
// event list must fit under.
const DefaultByteBudget = 16_000

// Truncate returns the maximal prefix of records whose compact JSON encoding
// fits within budget bytes, found by binary search, plus whether anything was
// cut. The single-element prefix is returned even when it alone exceeds the
// budget; the caller learns about the overflow through the flag. Pure and
// deterministic: same records and budget, same result.
func Truncate(records []models.EventRecord, budget int) ([]models.EventRecord, bool) {
	if len(records) == 0 {
		return records, false
	}
	if encodedSize(records) <= budget {
		return records, false
	}

	low, high := 1, len(records)
	best := 1
	for low <= high {
		mid := (low + high) / 2
		if encodedSize(records[:mid]) <= budget {
			best = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return records[:best], true
}

// encodedSize is the byte length of the compact JSON encoding of records.
// Records originate from decoded JSON, so re-encoding cannot fail; a failure
// is treated as oversized rather than fitting.
func encodedSize(records []models.EventRecord) int {
	b, err := json.Marshal(records)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return len(b)
}
