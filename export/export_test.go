package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samples = []float32{0, 0.5, -0.5, 1, -1, 2, -3}

func TestWAV(t *testing.T) {
	b, err := EncodeWAV(samples, 48000)
	require.NoError(t, err)

	d := wav.NewDecoder(bytes.NewReader(b))
	require.True(t, d.IsValidFile())
	buf, err := d.FullPCMBuffer()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(48000, buf.Format.SampleRate)
	assert.Equal(1, buf.Format.NumChannels)
	assert.Equal(uint16(16), d.BitDepth)
	assert.Equal([]int{0, 16383, -16383, 32767, -32767, 32767, -32767}, buf.Data)
}

func TestWriteWAVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	require.NoError(t, WriteWAVFile(path, samples, 22050))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	d := wav.NewDecoder(f)
	require.True(t, d.IsValidFile())
	assert.Equal(t, uint32(22050), d.SampleRate)

	assert.Error(t, WriteWAVFile(filepath.Join(t.TempDir(), "missing", "out.wav"), samples, 22050))
}

func TestSeekBuffer(t *testing.T) {
	var b seekBuffer
	b.Write([]byte("hello world"))
	b.Seek(0, 0)
	b.Write([]byte("J"))
	b.Seek(-5, 2)
	b.Write([]byte("W"))
	assert.Equal(t, "Jello World", string(b.buf))
	_, err := b.Seek(-1, 0)
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Text(&b, []float32{0.25, -0.125, 1}, 48000))
	assert.Equal(t, `# Audio samples
# Sample rate: 48000 Hz
# Sample count: 3
# Duration: 0.000 seconds

0.25000000
-0.12500000
1.00000000
`, b.String())
}
