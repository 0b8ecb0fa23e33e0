package grayzip

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EntryError records the failure to extract a single archive entry.
type EntryError struct {
	Name string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// ExtractResult holds the outcome of an archive extraction.
type ExtractResult struct {
	// Dir is the destination directory.
	Dir string
	// Files lists the paths written under Dir, in archive order.
	Files []string
	// Failed lists the entries which could not be extracted.
	Failed []*EntryError
}

// Unzip decompresses the archive found at src into the dst directory,
// recreating the directory structure of the archive entries.
//
// Directory entries are skipped; the directories needed by the file entries
// are created on demand. Entries are extracted one after the other and every
// file is closed before the next entry is read, so all the files reported in
// the result are complete on return.
//
// An error is returned only if the archive cannot be opened or the destination
// cannot be created. Failing entries are logged and recorded in the result,
// the extraction carries on with the remaining ones and nothing is rolled back.
func (p *Processor) Unzip(src, dst string) (*ExtractResult, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		err = errors.Wrap(err, "unable to open the archive")
		p.logger().Error("failed to unzip archive", zap.String("src", src), zap.Error(err))
		return nil, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			p.logger().Warn("could not close the archive", zap.String("src", src), zap.Error(err))
		}
	}()

	if err := os.MkdirAll(dst, 0755); err != nil {
		err = errors.Wrap(err, "unable to create the destination directory")
		p.logger().Error("failed to unzip archive", zap.String("dst", dst), zap.Error(err))
		return nil, err
	}

	res := &ExtractResult{Dir: dst}
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}

		path := filepath.Join(dst, filepath.FromSlash(f.Name))
		if err := extractFile(f, path); err != nil {
			p.logger().Error("failed to extract archive entry",
				zap.String("entry", f.Name),
				zap.String("path", path),
				zap.Error(err),
			)
			res.Failed = append(res.Failed, &EntryError{Name: f.Name, Err: err})
			continue
		}
		p.logger().Debug("archive entry extracted", zap.String("path", path))
		res.Files = append(res.Files, path)
	}

	return res, nil
}

// extractFile writes the decompressed content of f into path.
func extractFile(f *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "unable to create the parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return errors.Wrap(err, "unable to open the archive entry")
	}
	defer rc.Close()

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "unable to create the destination file")
	}
	if _, err := io.Copy(dst, rc); err != nil {
		dst.Close()
		return errors.Wrap(err, "unable to decompress the archive entry")
	}
	return errors.Wrap(dst.Close(), "unable to flush the destination file")
}
