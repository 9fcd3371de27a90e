package service

import (
	models "stokercloud_gateway"
	"stokercloud_gateway/internal/coordinator"
)

// Authorization guards the local presentation API with bearer tokens.
type Authorization interface {
	GenerateToken(accessKey string) (string, error)
	ParseToken(accessToken string) error
}

// Monitoring exposes the last published controller snapshot.
type Monitoring interface {
	Snapshot() (models.ControllerSnapshot, models.RefreshInfo, bool)
}

// EventLog exposes the last published furnace event batch.
type EventLog interface {
	Latest() (models.EventBatch, models.RefreshInfo, bool)
}

// Service aggregates the sub-services the HTTP layer consumes.
type Service struct {
	Authorization
	Monitoring
	EventLog
}

// NewService wires the poll coordinators and auth into one service root.
func NewService(device *coordinator.Device, events *coordinator.Events, auth *AuthService) *Service {
	return &Service{
		Authorization: auth,
		Monitoring:    device,
		EventLog:      events,
	}
}
