package service

import (
	"context"
	"time"

	"github.com/Eigen-OS/eigen-os/internal/domain"
	"github.com/Eigen-OS/eigen-os/internal/dto"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/pkg/id"
)

// DeviceService implements the public device operations over a canned
// device catalog. The catalog holds the local simulator until real
// backends register themselves.
type DeviceService struct{}

// NewDeviceService creates a new device service
func NewDeviceService() *DeviceService {
	return &DeviceService{}
}

// ListDevices returns the device catalog. The backend_type filter is
// accepted but not applied; the catalog has a single simulator entry.
func (s *DeviceService) ListDevices(ctx context.Context, req *dto.ListDevicesRequest) *dto.ListDevicesResponse {
	return &dto.ListDevicesResponse{
		Devices: []domain.DeviceInfo{
			{
				DeviceID:         "sim:local",
				Name:             "Local simulator",
				BackendType:      "simulator",
				Status:           domain.DeviceStatusOnline,
				QueueDepth:       0,
				EstimatedWaitSec: 0,
				Capabilities:     map[string]string{"shots": "1024"},
			},
		},
	}
}

// GetDeviceDetails returns placeholder details for a device.
func (s *DeviceService) GetDeviceDetails(ctx context.Context, deviceID string) *dto.DeviceDetailsResponse {
	return &dto.DeviceDetailsResponse{
		Device: domain.DeviceInfo{
			DeviceID:    deviceID,
			Name:        "Device (stub)",
			BackendType: "simulator",
			Status:      domain.DeviceStatusOnline,
		},
	}
}

// GetDeviceStatus returns the placeholder live status for a device.
func (s *DeviceService) GetDeviceStatus(ctx context.Context, deviceID string) *dto.DeviceStatusResponse {
	return &dto.DeviceStatusResponse{
		DeviceID:         deviceID,
		Status:           domain.DeviceStatusOnline,
		QueueDepth:       0,
		EstimatedWaitSec: 0,
		Metadata:         map[string]string{"stub": "true"},
	}
}

// ReserveDevice issues a reservation for a device time window.
func (s *DeviceService) ReserveDevice(ctx context.Context, req *dto.ReserveDeviceRequest) *dto.ReserveDeviceResponse {
	middleware.RecordDeviceReservation(req.DeviceID)

	return &dto.ReserveDeviceResponse{
		ReservationID: id.NewReservationID(),
		ExpiresAt:     time.Now().UTC(),
	}
}
