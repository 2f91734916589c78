package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordonklaus/piano/model"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var b bytes.Buffer
	rootCmd.SetOut(&b)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return b.String()
}

func TestDemoSong(t *testing.T) {
	s, err := demoSong()
	require.NoError(t, err)
	assert.Equal(t, 8, s.Len())
	assert.Equal(t, uint32(1920), s.TotalTicks())
	assert.Equal(t, 2.0, s.Duration())
}

func TestPlayer(t *testing.T) {
	for _, name := range []string{"portaudio", "oto"} {
		_, err := player(name)
		assert.NoError(t, err, name)
	}
	_, err := player("alsa")
	assert.Error(t, err)
}

func TestPredict(t *testing.T) {
	got := run(t, "predict", "--pitch", "0.5", "--velocity", "0.5")
	assert.True(t, strings.HasPrefix(got, "log-amplitude -6.37"), got)
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.wav")
	run(t, "render", "--sample-rate", "8000", "-o", path)

	d := wav.NewDecoder(mustOpen(t, path))
	buf, err := d.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 8000, buf.Format.SampleRate)
	// 2s song plus a 1s release tail
	assert.Equal(t, 24000, len(buf.Data))
}

func TestQuantizeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	run(t, "quantize", path)
	m, err := model.Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.Default().Sizes(), m.Sizes())
}

func mustOpen(t *testing.T, path string) *os.File {
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}
