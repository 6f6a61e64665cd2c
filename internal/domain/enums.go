package domain

// JobState represents the lifecycle state of a job
type JobState string

const (
	JobStatePending   JobState = "PENDING"
	JobStateCompiling JobState = "COMPILING"
	JobStateQueued    JobState = "QUEUED"
	JobStateRunning   JobState = "RUNNING"
	JobStateDone      JobState = "DONE"
	JobStateError     JobState = "ERROR"
	JobStateCancelled JobState = "CANCELLED"
)

// IsValid checks if the job state is valid
func (s JobState) IsValid() bool {
	switch s {
	case JobStatePending, JobStateCompiling, JobStateQueued, JobStateRunning,
		JobStateDone, JobStateError, JobStateCancelled:
		return true
	}
	return false
}

// IsTerminal checks if the job state is terminal
func (s JobState) IsTerminal() bool {
	switch s {
	case JobStateDone, JobStateError, JobStateCancelled:
		return true
	}
	return false
}

// DeviceStatus represents the availability of a device
type DeviceStatus string

const (
	DeviceStatusOnline      DeviceStatus = "ONLINE"
	DeviceStatusOffline     DeviceStatus = "OFFLINE"
	DeviceStatusMaintenance DeviceStatus = "MAINTENANCE"
)

// IsValid checks if the device status is valid
func (s DeviceStatus) IsValid() bool {
	switch s {
	case DeviceStatusOnline, DeviceStatusOffline, DeviceStatusMaintenance:
		return true
	}
	return false
}
