package grayzip

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_ShouldGrayscaleImage(t *testing.T) {
	p := &Processor{}

	var out bytes.Buffer
	err := p.Process(bytes.NewReader(encodeTestPNG(t, sampleImage())), &out)
	require.NoError(t, err)

	img, err := png.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())

	want := color.NRGBA{85, 85, 85, 255}
	for x := 0; x < 2; x++ {
		got := color.NRGBAModel.Convert(img.At(x, 0))
		assert.Equal(t, want, got)
	}
}

func TestProcess_ShouldPreserveAlpha(t *testing.T) {
	p := &Processor{}
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(0, 0, color.NRGBA{200, 100, 0, 128})
	src.SetNRGBA(1, 0, color.NRGBA{10, 20, 30, 1})
	src.SetNRGBA(2, 1, color.NRGBA{90, 90, 91, 254})

	var out bytes.Buffer
	require.NoError(t, p.Process(bytes.NewReader(encodeTestPNG(t, src)), &out))

	img, err := png.Decode(&out)
	require.NoError(t, err)

	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok, "expected *image.NRGBA, got %T", img)
	assert.Equal(t, color.NRGBA{100, 100, 100, 128}, nrgba.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{20, 20, 20, 1}, nrgba.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{90, 90, 90, 254}, nrgba.NRGBAAt(2, 1))
	assert.Equal(t, color.NRGBA{}, nrgba.NRGBAAt(0, 1))
}

func TestProcess_ShouldFailOnInvalidImage(t *testing.T) {
	p := &Processor{}

	var out bytes.Buffer
	err := p.Process(bytes.NewReader([]byte("not an image")), &out)
	assert.Error(t, err)
	assert.Zero(t, out.Len())
}

func TestGrayscaleFile_ShouldSaveImage(t *testing.T) {
	p, logs := newObservedProcessor()
	dir := t.TempDir()

	in := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(in, encodeTestPNG(t, sampleImage()), 0644))
	out := filepath.Join(dir, "nested", "out", "a.png")

	require.NoError(t, p.GrayscaleFile(in, out))

	img := readNRGBA(t, out)
	assert.Equal(t, []uint8{85, 85, 85, 255, 85, 85, 85, 255}, img.Pix)

	saved := logs.FilterMessage("grayscaled image saved").All()
	require.Len(t, saved, 1)
	assert.Equal(t, out, saved[0].ContextMap()["path"])

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file should be left behind")
}

func TestGrayscaleFile_ShouldBeIdempotent(t *testing.T) {
	p := &Processor{}
	dir := t.TempDir()

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 13)
	}
	in := filepath.Join(dir, "in.png")
	require.NoError(t, os.WriteFile(in, encodeTestPNG(t, src), 0644))

	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.png")
	require.NoError(t, p.GrayscaleFile(in, first))
	require.NoError(t, p.GrayscaleFile(first, second))

	assert.Equal(t, readNRGBA(t, first).Pix, readNRGBA(t, second).Pix)
}

func TestGrayscaleFile_ShouldNotLeavePartialOutput(t *testing.T) {
	dir := t.TempDir()
	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage after the signature")...)

	cases := map[string][]byte{
		"text.png":    []byte("just some text"),
		"corrupt.png": corrupt,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			p, logs := newObservedProcessor()
			in := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(in, body, 0644))

			outDir := filepath.Join(dir, "out-"+name)
			out := filepath.Join(outDir, name)
			err := p.GrayscaleFile(in, out)
			require.Error(t, err)

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr))

			failed := logs.FilterMessage("failed to grayscale image").All()
			require.Len(t, failed, 1)
			assert.Equal(t, in, failed[0].ContextMap()["src"])
			assert.Contains(t, failed[0].ContextMap(), "error")
		})
	}
}

func TestGrayscaleFile_ShouldFailOnMissingSource(t *testing.T) {
	p := &Processor{}
	dir := t.TempDir()

	err := p.GrayscaleFile(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"))
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "out.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFile_ShouldReplaceExistingFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(name, []byte("previous content"), 0644))

	require.NoError(t, writeFile(name, []byte("new")))

	got, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	info, err := os.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
