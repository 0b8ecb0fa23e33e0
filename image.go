package grayzip

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// decodePNG decodes a PNG stream into an *image.NRGBA with min-point at (0, 0).
func decodePNG(r io.Reader) (*image.NRGBA, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the png image")
	}
	return imaging.Clone(img), nil
}

// encodePNG encodes an image as PNG to a destination of type io.Writer.
func encodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return errors.Wrap(err, "could not encode the png image")
	}
	return nil
}

// writeFile writes data into a temporary file placed next to name, then
// renames it, so name is either absent or complete. Missing parent
// directories are created.
func writeFile(name string, data []byte) (err error) {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "unable to create the destination directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+"-*")
	if err != nil {
		return errors.Wrap(err, "unable to create the destination file")
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "unable to write the destination file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "unable to write the destination file")
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrap(err, "unable to write the destination file")
	}
	if err = os.Rename(tmp.Name(), name); err != nil {
		return errors.Wrap(err, "unable to move the destination file in place")
	}
	return nil
}
