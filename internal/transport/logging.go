// SPDX-License-Identifier: MIT
package transport

import (
	"nausea/internal/log"
)

// LoggingTransport implements the Transport interface by logging a summary
// of each tick at debug level.
type LoggingTransport struct {
	sent uint64
}

// NewLoggingTransport creates a new LoggingTransport instance.
func NewLoggingTransport() *LoggingTransport {
	log.Debugf("Transport: Using LoggingTransport")
	return &LoggingTransport{}
}

// Send logs the column count and the loudest column.
func (lt *LoggingTransport) Send(values []float64) error {
	lt.sent++
	if log.GetLevel() > log.LevelDebug {
		return nil
	}

	peak, at := 0.0, -1
	for i, v := range values {
		if v > peak {
			peak, at = v, i
		}
	}
	log.Debugf("LOG_TRANSPORT: tick %d, %d columns, peak %.1f at column %d", lt.sent, len(values), peak, at)
	return nil
}

// Sent returns the number of ticks received.
func (lt *LoggingTransport) Sent() uint64 {
	return lt.sent
}

// Close is a no-op for LoggingTransport.
func (lt *LoggingTransport) Close() error {
	log.Debugf("LOG_TRANSPORT: Close called after %d ticks.", lt.sent)
	return nil
}

// Ensure LoggingTransport satisfies the interface at compile time.
var _ Transport = (*LoggingTransport)(nil)
