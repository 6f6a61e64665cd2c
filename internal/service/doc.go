// Package service contains the business logic layer for the Eigen-OS
// service front-ends.
//
// Services sit between HTTP handlers and the backends they front. The
// public JobService and DeviceService return deterministic placeholder
// responses until the execution backends land; the KernelService runs
// the real in-memory job pipeline behind the internal gateway.
//
// Handlers own transport concerns (parsing, validation dispatch, request
// logging); services own response assembly and the pipeline.
//
// # Thread Safety
//
// All services are designed to be safe for concurrent use from
// multiple goroutines.
package service
