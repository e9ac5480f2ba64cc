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
package wavwriter

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/gopher6502/curated"
	"github.com/jetsetilly/gopher6502/hardware/cpu/signals"
	"github.com/jetsetilly/gopher6502/harness"
	"github.com/jetsetilly/gopher6502/logger"
)

// NumChannels is the number of channels in the WAV file.
const NumChannels = 8

const (
	bitDepth = 16
	high     = 0x7fff

	// audio format code for uncompressed samples
	pcmFormat = 1
)

// the input lines in channel order
var lineChannels = []signals.Line{signals.Reset, signals.IRQ, signals.NMI, signals.Ready, signals.SO}

// Lines is the part of the CPU the WavWriter samples.
type Lines interface {
	Line(line signals.Line) bool
}

// WavWriter implements the harness.Observer interface.
type WavWriter struct {
	filename string
	lines    Lines
	rate     int
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type. The
// rate is the number of accesses per second and is used as the sample rate
// of the file.
func New(filename string, lines Lines, rate int) (*WavWriter, error) {
	if rate <= 0 {
		return nil, curated.Errorf("wavwriter: %v", "sample rate must be positive")
	}

	return &WavWriter{
		filename: filename,
		lines:    lines,
		rate:     rate,
	}, nil
}

func level(b bool) int {
	if b {
		return high
	}
	return 0
}

// Observe implements the harness.Observer interface.
func (aw *WavWriter) Observe(acc harness.Access) error {
	aw.buffer = append(aw.buffer, level(!acc.Write), level(acc.Sync))
	for _, l := range lineChannels {
		aw.buffer = append(aw.buffer, level(aw.lines.Line(l)))
	}
	aw.buffer = append(aw.buffer, int(acc.Data)<<7)
	return nil
}

// Len returns the number of samples recorded.
func (aw *WavWriter) Len() int {
	return len(aw.buffer) / NumChannels
}

// WriteTo encodes the samples recorded so far.
func (aw *WavWriter) WriteTo(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, aw.rate, bitDepth, NumChannels, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: NumChannels,
			SampleRate:  aw.rate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// Close writes the file to disk.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	logger.Logf(logger.Allow, "wavwriter", "writing %d samples to %s", aw.Len(), aw.filename)

	return aw.WriteTo(f)
}
