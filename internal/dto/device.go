package dto

import (
	"time"

	"github.com/Eigen-OS/eigen-os/internal/domain"
)

// ListDevicesRequest lists available devices, optionally filtered by
// backend type ("simulator" or "hardware").
type ListDevicesRequest struct {
	BackendType string `json:"backend_type,omitempty"`
}

// ListDevicesResponse carries the device catalog.
type ListDevicesResponse struct {
	Devices []domain.DeviceInfo `json:"devices"`
}

// GetDeviceDetailsRequest looks up a single device.
type GetDeviceDetailsRequest struct {
	DeviceID string `json:"device_id"`
}

// DeviceDetailsResponse carries one device description.
type DeviceDetailsResponse struct {
	Device domain.DeviceInfo `json:"device"`
}

// GetDeviceStatusRequest looks up the live status of a device.
type GetDeviceStatusRequest struct {
	DeviceID string `json:"device_id"`
}

// DeviceStatusResponse carries the live queue state of a device.
type DeviceStatusResponse struct {
	DeviceID         string              `json:"device_id"`
	Status           domain.DeviceStatus `json:"status"`
	QueueDepth       int                 `json:"queue_depth"`
	EstimatedWaitSec int                 `json:"estimated_wait_sec"`
	Metadata         map[string]string   `json:"metadata"`
}

// ReserveDeviceRequest reserves a device for exclusive use.
type ReserveDeviceRequest struct {
	DeviceID   string `json:"device_id"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

// ReserveDeviceResponse acknowledges a reservation.
type ReserveDeviceResponse struct {
	ReservationID string    `json:"reservation_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}
