package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	models "stokercloud_gateway"
	"stokercloud_gateway/internal/service"
)

func TestEventsHandler(t *testing.T) {
	batch := models.EventBatch{
		Events: []models.EventRecord{
			{"type": "IGN", "type_translated": "Ignition"},
			{"type": "STOP"},
		},
		Count:               100,
		Offset:              0,
		TranslationLanguage: "uk",
		TranslationsLoaded:  true,
	}
	logs := &mockEventLog{batch: batch, ok: true}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: logs})

	w := doAuthed(r, http.MethodGet, "/api/v1/events")
	if w.Code != http.StatusOK {
		t.Fatalf("events status=%d, body=%s", w.Code, w.Body.String())
	}

	var out struct {
		Events              []models.EventRecord `json:"events"`
		EventsTotal         int                  `json:"events_total"`
		EventsTruncated     bool                 `json:"events_truncated"`
		Count               int                  `json:"count"`
		TranslationLanguage string               `json:"translation_language"`
		TranslationsLoaded  bool                 `json:"translations_loaded"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.EventsTotal != 2 || out.EventsTruncated || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Count != 100 || out.TranslationLanguage != "uk" || !out.TranslationsLoaded {
		t.Errorf("request echoes lost: %+v", out)
	}
	if out.Events[0]["type_translated"] != "Ignition" {
		t.Errorf("annotation lost: %v", out.Events[0])
	}
}

func TestEventsHandler_TruncatesAtBoundary(t *testing.T) {
	records := make([]models.EventRecord, 50)
	for i := range records {
		records[i] = models.EventRecord{"msg": strings.Repeat("x", 40)}
	}
	logs := &mockEventLog{batch: models.EventBatch{Events: records}, ok: true}
	// budget small enough to force a cut
	r := newTestRouterWithBudget(&service.Service{Authorization: &mockAuth{}, EventLog: logs}, 500)

	w := doAuthed(r, http.MethodGet, "/api/v1/events")
	if w.Code != http.StatusOK {
		t.Fatalf("events status=%d", w.Code)
	}

	var out struct {
		Events          []models.EventRecord `json:"events"`
		EventsTotal     int                  `json:"events_total"`
		EventsTruncated bool                 `json:"events_truncated"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if !out.EventsTruncated {
		t.Fatal("expected events_truncated=true")
	}
	if out.EventsTotal != 50 {
		t.Errorf("events_total must count the full batch, got %d", out.EventsTotal)
	}
	if len(out.Events) == 0 || len(out.Events) >= 50 {
		t.Errorf("expected a proper prefix, got %d records", len(out.Events))
	}
	if b, _ := json.Marshal(out.Events); len(b) > 500 {
		t.Errorf("served events encode to %d bytes, over the 500 byte budget", len(b))
	}
}

func TestEventsHandler_NoBatchYet(t *testing.T) {
	logs := &mockEventLog{info: models.RefreshInfo{LastError: "boom"}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: logs})

	w := doAuthed(r, http.MethodGet, "/api/v1/events")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before first batch, got %d", w.Code)
	}
}
