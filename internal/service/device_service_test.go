package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eigen-OS/eigen-os/internal/domain"
	"github.com/Eigen-OS/eigen-os/internal/dto"
)

func TestDeviceService_ListDevices(t *testing.T) {
	svc := NewDeviceService()

	t.Run("returns the local simulator", func(t *testing.T) {
		resp := svc.ListDevices(context.Background(), &dto.ListDevicesRequest{})

		require.Len(t, resp.Devices, 1)
		device := resp.Devices[0]
		assert.Equal(t, "sim:local", device.DeviceID)
		assert.Equal(t, "Local simulator", device.Name)
		assert.Equal(t, "simulator", device.BackendType)
		assert.Equal(t, domain.DeviceStatusOnline, device.Status)
		assert.Equal(t, 0, device.QueueDepth)
		assert.Equal(t, 0, device.EstimatedWaitSec)
		assert.Equal(t, map[string]string{"shots": "1024"}, device.Capabilities)
	})

	t.Run("filter is accepted but not applied", func(t *testing.T) {
		resp := svc.ListDevices(context.Background(), &dto.ListDevicesRequest{BackendType: "hardware"})

		require.Len(t, resp.Devices, 1)
		assert.Equal(t, "sim:local", resp.Devices[0].DeviceID)
	})
}

func TestDeviceService_GetDeviceDetails(t *testing.T) {
	svc := NewDeviceService()

	resp := svc.GetDeviceDetails(context.Background(), "qpu:alpha")

	assert.Equal(t, "qpu:alpha", resp.Device.DeviceID)
	assert.Equal(t, "Device (stub)", resp.Device.Name)
	assert.Equal(t, "simulator", resp.Device.BackendType)
	assert.Equal(t, domain.DeviceStatusOnline, resp.Device.Status)
}

func TestDeviceService_GetDeviceStatus(t *testing.T) {
	svc := NewDeviceService()

	resp := svc.GetDeviceStatus(context.Background(), "qpu:alpha")

	assert.Equal(t, "qpu:alpha", resp.DeviceID)
	assert.Equal(t, domain.DeviceStatusOnline, resp.Status)
	assert.Equal(t, 0, resp.QueueDepth)
	assert.Equal(t, 0, resp.EstimatedWaitSec)
	assert.Equal(t, map[string]string{"stub": "true"}, resp.Metadata)
}

func TestDeviceService_ReserveDevice(t *testing.T) {
	svc := NewDeviceService()

	t.Run("issues a reservation that expires immediately", func(t *testing.T) {
		before := time.Now().UTC()
		resp := svc.ReserveDevice(context.Background(), &dto.ReserveDeviceRequest{
			DeviceID:   "qpu:alpha",
			TTLSeconds: 600,
		})

		assert.Regexp(t, `^rsv_[0-9a-f]{12}$`, resp.ReservationID)
		assert.False(t, resp.ExpiresAt.Before(before))
		assert.WithinDuration(t, time.Now().UTC(), resp.ExpiresAt, time.Minute)
	})

	t.Run("generates a fresh reservation id per call", func(t *testing.T) {
		req := &dto.ReserveDeviceRequest{DeviceID: "qpu:alpha", TTLSeconds: 600}

		first := svc.ReserveDevice(context.Background(), req)
		second := svc.ReserveDevice(context.Background(), req)

		assert.NotEqual(t, first.ReservationID, second.ReservationID)
	})
}
