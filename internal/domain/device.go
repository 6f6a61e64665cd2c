package domain

// DeviceInfo describes one execution backend in the device catalog.
// Capabilities are free-form key/value pairs (e.g. "shots" -> "1024").
type DeviceInfo struct {
	DeviceID         string            `json:"device_id"`
	Name             string            `json:"name"`
	BackendType      string            `json:"backend_type"`
	Status           DeviceStatus      `json:"status"`
	QueueDepth       int               `json:"queue_depth"`
	EstimatedWaitSec int               `json:"estimated_wait_sec"`
	Capabilities     map[string]string `json:"capabilities,omitempty"`
}
