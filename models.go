package stokercloud_gateway

import "time"

// ControllerSnapshot is the payload of one successful controllerdata2 fetch.
// Sections (weatherdata, boilerdata, hopperdata, dhwdata, frontdata,
// leftoutput, miscdata, ...) keep the loose shape the vendor serves; a
// snapshot is always the complete result of a single request, never merged
// from several.
type ControllerSnapshot map[string]any

// EventRecord is one furnace log entry: string keys mapped to scalar values.
// Translation annotation adds "<key>_translated" siblings without touching
// the original fields.
type EventRecord map[string]any

// LoginResult carries the session token returned by login.php plus the
// optional account fields the vendor sometimes includes.
type LoginResult struct {
	Token       string `json:"token"`
	Credentials string `json:"credentials,omitempty"`
	Master      int    `json:"master,omitempty"`
}

// EventBatch is the published result of one event-log refresh. Count and
// Offset echo the request parameters; the server does not confirm them.
type EventBatch struct {
	Raw                 any           `json:"raw"`
	Events              []EventRecord `json:"events"`
	Count               int           `json:"count"`
	Offset              int           `json:"offset"`
	TranslationLanguage string        `json:"translation_language"`
	TranslationsLoaded  bool          `json:"translations_loaded"`
}

// SensorValue is one projected display value from a ControllerSnapshot.
type SensorValue struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Unit  string `json:"unit,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Value any    `json:"value"`
}

// DeviceIdentity names the furnace a snapshot belongs to. Serial wins over
// alias; a snapshot with neither yields no identity at all.
type DeviceIdentity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

// RefreshInfo describes the poll cycle that produced a published value.
type RefreshInfo struct {
	CycleID   string    `json:"cycle_id"`
	UpdatedAt time.Time `json:"updated_at"`
	LastError string    `json:"last_error,omitempty"`
}
