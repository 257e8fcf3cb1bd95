// SPDX-License-Identifier: MIT
package transport

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"
	"time"

	"nausea/internal/log"
)

// HeaderSize is the length of the fixed part of a UDP packet.
const HeaderSize = 4 + 8 + 2

// UDPTransport sends every tick as one datagram.
type UDPTransport struct {
	conn   *net.UDPConn
	mu     sync.Mutex // Protects conn during Close
	closed bool

	sequenceNum uint32

	// Reused per packet.
	f32Buffer    []float32
	packetBuffer *bytes.Buffer
}

// NewUDPTransport dials targetAddress ("host:port").
func NewUDPTransport(targetAddress string) (*UDPTransport, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", targetAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve UDP target address '%s': %w", targetAddress, err)
	}

	// No local bind is needed for sending.
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial UDP for target '%s': %w", targetAddress, err)
	}

	log.Infof("UDPTransport: Sending to %s", conn.RemoteAddr())

	return &UDPTransport{
		conn:         conn,
		packetBuffer: new(bytes.Buffer),
	}, nil
}

/*
UDP Packet Structure (BigEndian)

+-----------------------------------------------------------------------------+
| Field             | Data Type      | Size (Bytes) | Description             |
|-------------------|----------------|--------------|-------------------------|
| Sequence Number   | uint32         | 4            | Monotonically increasing|
| Timestamp         | int64          | 8            | Nanoseconds since epoch |
| Value Count       | uint16         | 2            | Number of floats (N)    |
| Values            | []float32      | N * 4        | Column heights in rows  |
+-----------------------------------------------------------------------------+
*/

// Send packs values and writes one datagram. Values beyond 65535 are cut.
func (u *UDPTransport) Send(values []float64) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return errors.New("UDP transport is closed")
	}

	n := min(len(values), math.MaxUint16)
	if cap(u.f32Buffer) < n {
		u.f32Buffer = make([]float32, n)
	}
	u.f32Buffer = u.f32Buffer[:n]
	for i, v := range values[:n] {
		u.f32Buffer[i] = float32(v)
	}

	u.sequenceNum++
	u.packetBuffer.Reset()

	err := binary.Write(u.packetBuffer, binary.BigEndian, u.sequenceNum)
	if err == nil {
		err = binary.Write(u.packetBuffer, binary.BigEndian, time.Now().UnixNano())
	}
	if err == nil {
		err = binary.Write(u.packetBuffer, binary.BigEndian, uint16(n))
	}
	if err == nil {
		err = binary.Write(u.packetBuffer, binary.BigEndian, u.f32Buffer)
	}
	if err != nil {
		return fmt.Errorf("failed to pack UDP packet: %w", err)
	}

	if _, err := u.conn.Write(u.packetBuffer.Bytes()); err != nil {
		return fmt.Errorf("failed to send UDP packet: %w", err)
	}
	return nil
}

// Close closes the underlying UDP connection.
func (u *UDPTransport) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return nil
	}
	u.closed = true

	log.Debugf("UDPTransport: Closing connection to %s", u.conn.RemoteAddr())
	if err := u.conn.Close(); err != nil {
		return fmt.Errorf("failed to close UDP connection: %w", err)
	}
	return nil
}

var _ Transport = (*UDPTransport)(nil)

// DecodePacket parses a datagram built by UDPTransport.
func DecodePacket(b []byte) (seq uint32, ts int64, values []float32, err error) {
	if len(b) < HeaderSize {
		return 0, 0, nil, fmt.Errorf("packet too short: %d bytes", len(b))
	}
	seq = binary.BigEndian.Uint32(b[0:4])
	ts = int64(binary.BigEndian.Uint64(b[4:12]))
	n := int(binary.BigEndian.Uint16(b[12:14]))

	if len(b) != HeaderSize+4*n {
		return 0, 0, nil, fmt.Errorf("packet length %d does not match %d values", len(b), n)
	}
	values = make([]float32, n)
	for i := range values {
		values[i] = math.Float32frombits(binary.BigEndian.Uint32(b[HeaderSize+4*i:]))
	}
	return seq, ts, values, nil
}
