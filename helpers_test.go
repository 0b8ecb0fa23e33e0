package grayzip

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type zipEntry struct {
	name string
	body []byte
}

// makeZip writes a zip archive holding entries at path. Names ending
// with a slash are stored as directory entries.
func makeZip(t *testing.T, path string, entries ...zipEntry) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if len(e.body) > 0 {
			_, err = w.Write(e.body)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

// encodeTestPNG returns the PNG encoding of img.
func encodeTestPNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// readNRGBA decodes the PNG file found at path.
func readNRGBA(t *testing.T, path string) *image.NRGBA {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	return imaging.Clone(img)
}

// newObservedProcessor returns a Processor whose log entries are recorded.
func newObservedProcessor() (*Processor, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Processor{Logger: zap.New(core)}, logs
}

// sampleImage returns the 2x1 image with a pure red and a pure green pixel.
func sampleImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []uint8{
		255, 0, 0, 255,
		0, 255, 0, 255,
	})
	return img
}
