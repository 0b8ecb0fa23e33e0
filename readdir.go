package grayzip

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// validExtensions holds the file extensions picked up by ReadDir.
var validExtensions = []string{".png"}

// ReadDir returns the paths of the PNG files found directly inside dir.
// Subdirectories are not descended into and the order is the one of the
// underlying directory listing. In case dir cannot be read the failure is
// logged and returned together with an empty list.
func (p *Processor) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		err = errors.Wrap(err, "failed to read directory")
		p.logger().Error("failed to read directory", zap.String("dir", dir), zap.Error(err))
		return []string{}, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !slices.Contains(validExtensions, filepath.Ext(entry.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	p.logger().Debug("directory scanned", zap.String("dir", dir), zap.Int("images", len(paths)))

	return paths, nil
}
