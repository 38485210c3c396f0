package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	bitsPerSample = 16
	channels      = 1
)

// encodeWAV writes samples as a 16-bit mono PCM RIFF file.
func encodeWAV(samples []float64, rate int) ([]byte, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", rate)
	}
	dataLen := len(samples) * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + dataLen)
	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + dataLen),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16), // fmt chunk size
		uint16(1),  // PCM
		uint16(channels),
		uint32(rate),
		uint32(rate * blockAlign),
		uint16(blockAlign),
		uint16(bitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		uint32(dataLen),
	}
	for _, v := range header {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("write wav header: %w", err)
		}
	}
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		pcm[i] = int16(math.Round(s * math.MaxInt16))
	}
	if err := binary.Write(&buf, binary.LittleEndian, pcm); err != nil {
		return nil, fmt.Errorf("write wav data: %w", err)
	}
	return buf.Bytes(), nil
}
