package grayzip

import (
	"os"
	"path/filepath"
	"time"

	"github.com/esimov/grayzip/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Ops holds the paths the processing pipeline works with.
type Ops struct {
	// Src is the archive path. It can also be an http(s) URL,
	// in which case the archive is downloaded first.
	Src string
	// UnzipDir is the directory the archive is extracted into.
	UnzipDir string
	// OutDir is the directory receiving the grayscale images.
	OutDir string
}

// Result holds the relevant information about a single image conversion.
type Result struct {
	Src string
	Dst string
	Err error
}

// Report summarizes a pipeline run.
type Report struct {
	// Archive is nil when the archive could not be extracted.
	Archive    *ExtractResult
	ArchiveErr error
	// Images lists the PNG files found in the extraction directory.
	Images  []string
	ScanErr error
	Results []Result
	Elapsed time.Duration
}

// Converted returns the number of images converted successfully.
func (r *Report) Converted() int {
	var n int
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results of the conversions which failed.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Execute runs the pipeline sequentially: it extracts the archive into
// op.UnzipDir, collects the PNG files found there, then writes the grayscale
// version of each of them into op.OutDir under the same file name.
//
// Failures of the individual steps are logged by the step itself and recorded
// in the report; the run carries on past them on a best-effort basis. The only
// error returned is the failure to create the output directory.
func (p *Processor) Execute(op *Ops) (*Report, error) {
	now := time.Now()
	report := &Report{}
	defer func() {
		report.Elapsed = time.Since(now)
	}()

	src, cleanup, err := p.fetchArchive(op.Src)
	if err != nil {
		report.ArchiveErr = err
	} else {
		defer cleanup()

		p.startSpinner()
		report.Archive, report.ArchiveErr = p.Unzip(src, op.UnzipDir)
		p.stopSpinner(report.ArchiveErr)
	}

	report.Images, report.ScanErr = p.ReadDir(op.UnzipDir)

	if err := os.MkdirAll(op.OutDir, 0755); err != nil {
		err = errors.Wrap(err, "unable to create the output directory")
		p.logger().Error("failed to prepare output", zap.String("dir", op.OutDir), zap.Error(err))
		return report, err
	}

	for _, src := range report.Images {
		dst := filepath.Join(op.OutDir, filepath.Base(src))
		err := p.GrayscaleFile(src, dst)
		report.Results = append(report.Results, Result{
			Src: src,
			Dst: dst,
			Err: err,
		})
	}

	return report, nil
}

// fetchArchive returns the local path of the archive. Remote archives are
// downloaded into a temporary file which is removed by the returned function.
func (p *Processor) fetchArchive(src string) (string, func(), error) {
	if !utils.IsValidUrl(src) {
		return src, func() {}, nil
	}

	p.logger().Info("downloading archive", zap.String("url", src))
	name, err := utils.DownloadFile(src, "archive-*.zip")
	if err != nil {
		p.logger().Error("failed to download archive", zap.String("url", src), zap.Error(err))
		return "", nil, err
	}
	return name, func() {
		if err := os.Remove(name); err != nil {
			p.logger().Warn("could not remove the downloaded archive", zap.String("path", name), zap.Error(err))
		}
	}, nil
}

func (p *Processor) startSpinner() {
	if p.Spinner != nil {
		p.Spinner.Start()
	}
}

func (p *Processor) stopSpinner(err error) {
	if p.Spinner == nil {
		return
	}
	if err != nil {
		p.Spinner.StopMsg = utils.DecorateText("extracting archive failed ✘\n", utils.ErrorMessage)
	} else {
		p.Spinner.StopMsg = utils.DecorateText("archive extracted ✔\n", utils.SuccessMessage)
	}
	p.Spinner.Stop()
}
