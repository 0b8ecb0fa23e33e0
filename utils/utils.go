package utils

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/pkg/errors"
)

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// DetectContentType detects the file type by reading MIME type information of the file content.
func DetectContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	// Only the first 512 bytes are used to sniff the content type.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if n == 0 {
		return "", errors.Errorf("empty file: %s", fname)
	}

	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(buffer[:n]), nil
}

// DownloadFile downloads the resource found at uri into a temporary file
// and returns its name. The caller is responsible for removing the file.
func DownloadFile(uri, pattern string) (string, error) {
	res, err := http.Get(uri)
	if err != nil {
		return "", errors.Wrapf(err, "unable to download file from URI: %s", uri)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("unable to download file from URI: %s, status %v", uri, res.Status)
	}

	tmpfile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", errors.Wrap(err, "unable to create temporary file")
	}

	if _, err = io.Copy(tmpfile, res.Body); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return "", errors.Wrap(err, "unable to copy the source URI into the destination file")
	}
	if err := tmpfile.Close(); err != nil {
		os.Remove(tmpfile.Name())
		return "", errors.Wrap(err, "unable to close the temporary file")
	}

	return tmpfile.Name(), nil
}
