// Package validation implements the request validation rules for the
// System API.
//
// Rules are pure functions from a request to a list of field violations;
// an empty list means the request is valid. Rules never return errors and
// never panic: invalid input is data, not a fault. All checks for one
// request are evaluated eagerly so that every violation is reported in a
// single failure, in rule-check order.
//
// Only presence and positivity are checked here. Format, length and range
// rules belong to the backends this API fronts.
package validation
