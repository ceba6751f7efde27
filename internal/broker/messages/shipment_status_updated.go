package messages

import "time"

const TopicShipmentStatusUpdated = "shipment.status.updated"

// ShipmentStatusUpdated публикуется после каждой успешной записи статуса.
type ShipmentStatusUpdated struct {
	ShipmentID     string     `json:"shipment_id"`
	Carrier        string     `json:"carrier"`
	Status         string     `json:"status"`
	StatusCode     string     `json:"status_code,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	PolledAt       *time.Time `json:"polled_at,omitempty"`
}
