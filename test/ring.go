// This file is part of Gopher6502.
//
// Gopher6502 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher6502 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher6502.  If not, see <https://www.gnu.org/licenses/>.

package test

import (
	"fmt"
)

// RingWriter is an io.Writer that keeps the most recent bytes written to it.
// Once the ring is full the oldest bytes are discarded.
type RingWriter struct {
	buffer []byte
	size   int
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size for RingWriter (%d)", size)
	}
	return &RingWriter{
		size:   size,
		buffer: make([]byte, 0, size),
	}, nil
}

func (r *RingWriter) String() string {
	return string(r.buffer)
}

// Reset empties the ring.
func (r *RingWriter) Reset() {
	r.buffer = r.buffer[:0]
}

// Write implements the io.Writer interface.
func (r *RingWriter) Write(p []byte) (n int, err error) {
	if len(p) >= r.size {
		r.buffer = append(r.buffer[:0], p[len(p)-r.size:]...)
		return len(p), nil
	}

	if drop := len(r.buffer) + len(p) - r.size; drop > 0 {
		r.buffer = append(r.buffer[:0], r.buffer[drop:]...)
	}
	r.buffer = append(r.buffer, p...)

	return len(p), nil
}
