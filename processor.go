package grayzip

import (
	"bytes"
	"io"
	"os"

	"github.com/esimov/grayzip/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// pngContentType is the MIME type sniffed from a PNG file signature.
const pngContentType = "image/png"

// Processor options
type Processor struct {
	// Logger receives a line for every converted image and every failure.
	// A nil Logger discards the output.
	Logger *zap.Logger
	// Spinner, if set, is displayed while the archive is being extracted.
	Spinner *utils.Spinner
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Process decodes the PNG image read from r, converts it to grayscale
// and encodes the result as PNG into w.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	img, err := decodePNG(r)
	if err != nil {
		return err
	}
	return encodePNG(w, p.Grayscale(img))
}

// GrayscaleFile reads the PNG image found at in and writes its grayscale
// version to out, creating the parent directories of out when needed.
// The encoded image is buffered in memory and moved in place only once it
// has been fully written, so a failure never leaves a partial file behind.
func (p *Processor) GrayscaleFile(in, out string) (err error) {
	defer func() {
		if err != nil {
			p.logger().Error("failed to grayscale image",
				zap.String("src", in),
				zap.String("dst", out),
				zap.Error(err),
			)
		}
	}()

	ctype, err := utils.DetectContentType(in)
	if err != nil {
		return errors.Wrap(err, "unable to read the source image")
	}
	if ctype != pngContentType {
		return errors.Errorf("unsupported content type %q, expected %q", ctype, pngContentType)
	}

	src, err := os.Open(in)
	if err != nil {
		return errors.Wrap(err, "unable to open the source image")
	}
	defer src.Close()

	var buf bytes.Buffer
	if err = p.Process(src, &buf); err != nil {
		return err
	}
	if err = writeFile(out, buf.Bytes()); err != nil {
		return err
	}

	p.logger().Info("grayscaled image saved", zap.String("path", out))
	return nil
}
