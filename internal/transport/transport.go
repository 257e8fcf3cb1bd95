// SPDX-License-Identifier: MIT
//
// Package transport broadcasts the per-column values of each rendered tick
// to external listeners.
package transport

import "errors"

// Transport sends one tick's column values. Implementations must not retain
// values after Send returns; the caller reuses the slice.
type Transport interface {
	Send(values []float64) error
	Close() error
}

// Message is the JSON form of one tick.
type Message struct {
	Type      string    `json:"type"`
	Sequence  uint64    `json:"seq"`
	Timestamp int64     `json:"ts"` // Nanoseconds since epoch.
	Values    []float64 `json:"values"`
}

// Multi fans a tick out to several transports.
type Multi []Transport

// Send forwards values to every transport and joins their errors.
func (m Multi) Send(values []float64) error {
	var errs []error
	for _, t := range m {
		if err := t.Send(values); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every transport and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, t := range m {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ Transport = Multi(nil)
