// Package packaging bundles a product's deliverable files into ZIP archives,
// splitting into numbered parts when a single archive would exceed the
// marketplace upload limit.
package packaging

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrNoFiles reports an archive request with nothing to pack.
var ErrNoFiles = errors.New("no files to archive")

// Packer writes product archives.
type Packer struct {
	log zerolog.Logger
}

func NewPacker(log zerolog.Logger) *Packer {
	return &Packer{log: log}
}

// Archive packs files into one or more ZIPs in outDir. Files are assigned to
// parts greedily in order: a file goes into the current part unless its
// on-disk size would push the part's input total past maxBytes, in which
// case a new part starts. A single file larger than maxBytes still gets its
// own part.
//
// One part is named <baseName>.zip; multiple parts are named
// <baseName>_part1.zip, <baseName>_part2.zip, and so on. The written archive
// paths are returned in order.
func (p *Packer) Archive(files []string, outDir, baseName string, maxBytes int64) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if maxBytes < 1 {
		maxBytes = 1
	}

	parts, err := splitBySize(files, maxBytes)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	var written []string
	for i, part := range parts {
		name := baseName + ".zip"
		if len(parts) > 1 {
			name = fmt.Sprintf("%s_part%d.zip", baseName, i+1)
		}
		path := filepath.Join(outDir, name)

		if err := writeZip(path, part); err != nil {
			return written, err
		}
		p.log.Info().Str("archive", path).Int("files", len(part)).Msg("archive written")
		written = append(written, path)
	}
	return written, nil
}

// splitBySize groups files into parts whose summed input sizes stay at or
// below maxBytes.
func splitBySize(files []string, maxBytes int64) ([][]string, error) {
	var parts [][]string
	var current []string
	var currentSize int64

	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", f, err)
		}

		if len(current) > 0 && currentSize+info.Size() > maxBytes {
			parts = append(parts, current)
			current = nil
			currentSize = 0
		}
		current = append(current, f)
		currentSize += info.Size()
	}
	if len(current) > 0 {
		parts = append(parts, current)
	}
	return parts, nil
}

// writeZip creates one archive holding the given files under their base
// names. Written atomically via temp file and rename.
func writeZip(path string, files []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".zip-*")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer os.Remove(tmp.Name())

	zw := zip.NewWriter(tmp)
	for _, f := range files {
		if err := addFile(zw, f); err != nil {
			zw.Close()
			tmp.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp archive: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("add %s: %w", path, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
