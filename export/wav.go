// Package export writes rendered buffers to WAV files and plain-text
// sample dumps.
package export

import (
	"errors"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/gordonklaus/piano/maths"
)

const bitDepth = 16

// WAV writes x as 16-bit mono PCM. Samples outside [-1, 1] are clipped.
func WAV(w io.WriteSeeker, x []float32, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(x)),
		SourceBitDepth: bitDepth,
	}
	for i, x := range x {
		buf.Data[i] = int(maths.Max(maths.Min(x, 1), -1) * 32767)
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func WriteWAVFile(path string, x []float32, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return WAV(f, x, sampleRate)
}

// EncodeWAV returns the WAV encoding of x.
func EncodeWAV(x []float32, sampleRate int) ([]byte, error) {
	var b seekBuffer
	if err := WAV(&b, x, sampleRate); err != nil {
		return nil, err
	}
	return b.buf, nil
}

// seekBuffer is an in-memory io.WriteSeeker; the WAV encoder seeks back to
// patch chunk sizes once the data is written.
type seekBuffer struct {
	buf []byte
	pos int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.buf) {
		b.buf = append(b.buf, make([]byte, end-len(b.buf))...)
	}
	n := copy(b.buf[b.pos:], p)
	b.pos += n
	return n, nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.buf)) + offset
	default:
		return 0, errors.New("seekBuffer: invalid whence")
	}
	if pos < 0 {
		return 0, errors.New("seekBuffer: negative position")
	}
	b.pos = int(pos)
	return pos, nil
}
