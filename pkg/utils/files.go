package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("archive is empty")

// LoadFile loads the given file and performs decompression if necessary.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(strings.ToLower(filepath.Ext(filename)), data)
}

// Decompress decodes data according to the given file extension. Unknown
// extensions are returned as is. Archives yield their first file.
func Decompress(ext string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error

	// try to assert the compression type from the file extension
	switch ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zst":
		var d *zstd.Decoder
		d, err = zstd.NewReader(bytes.NewReader(data))
		if err == nil {
			defer d.Close()
			decoder = d
		}
	case ".zip":
		var r *zip.Reader
		r, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			break
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyArchive
		}

		var rc io.ReadCloser
		rc, err = r.File[0].Open()
		if err == nil {
			defer rc.Close()
			decoder = rc
		}
	case ".7z":
		var r *sevenzip.Reader
		r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			break
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyArchive
		}

		var rc io.ReadCloser
		rc, err = r.File[0].Open()
		if err == nil {
			defer rc.Close()
			decoder = rc
		}
	default:
		// return the data as is
		return data, nil
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s stream: %w", ext, err)
	}

	// read the decompressed data into a byte slice
	out, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s stream: %w", ext, err)
	}

	return out, nil
}
