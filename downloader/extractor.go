package downloader

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"javaboot/downloader/core"
	"javaboot/logging"
)

var (
	zipMagic  = []byte{'P', 'K', 0x03, 0x04}
	gzipMagic = []byte{0x1F, 0x8B, 0x08}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// Extractor unpacks runtime archives.
type Extractor struct{}

// NewExtractor creates a new Extractor instance
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath into destination, creating it if needed.
// Zip archives and tar streams (plain, gzip, xz or zstd) are recognised by their
// leading bytes. Entries resolving outside destination abort the extraction.
func (e *Extractor) Extract(archivePath, destination string) error {
	logging.LogInfo("📦 Extracting to %s...", destination)

	if err := e.extract(archivePath, destination); err != nil {
		return &core.ExtractError{Archive: archivePath, Err: err}
	}
	return nil
}

func (e *Extractor) extract(archivePath, destination string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read archive header: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("archive is empty")
	}
	header = header[:n]

	if err := os.MkdirAll(destination, 0755); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if bytes.HasPrefix(header, zipMagic) {
		stat, err := f.Stat()
		if err != nil {
			return err
		}
		return extractZip(f, stat.Size(), destination)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	stream, err := decompress(header, bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("failed to open compressed stream: %w", err)
	}
	defer stream.Close()
	return extractTar(stream, destination)
}

func decompress(header []byte, r io.Reader) (io.ReadCloser, error) {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return gzip.NewReader(r)
	case bytes.HasPrefix(header, xzMagic):
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case bytes.HasPrefix(header, zstdMagic):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return io.NopCloser(r), nil
	}
}

// securePath joins name onto destination, rejecting names that escape it.
func securePath(destination, name string) (string, error) {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" || strings.HasPrefix(name, string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal absolute path in archive: %s", name)
	}
	target := filepath.Join(destination, name)
	rel, err := filepath.Rel(destination, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal path in archive: %s", name)
	}
	return target, nil
}

func extractZip(r io.ReaderAt, size int64, destination string) error {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("invalid zip archive: %w", err)
	}

	for _, entry := range archive.File {
		target, err := securePath(destination, entry.Name)
		if err != nil {
			return err
		}

		info := entry.FileInfo()
		if info.IsDir() {
			if err := os.MkdirAll(target, dirMode(info.Mode())); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		src, err := entry.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", entry.Name, err)
		}
		err = writeFile(target, src, fileMode(info.Mode()))
		src.Close()
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", entry.Name, err)
		}
	}
	return nil
}

func extractTar(r io.Reader, destination string) error {
	tr := tar.NewReader(r)
	var links [][2]string

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("invalid tar archive: %w", err)
		}

		target, err := securePath(destination, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, dirMode(hdr.FileInfo().Mode())); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := writeFile(target, tr, fileMode(hdr.FileInfo().Mode())); err != nil {
				return fmt.Errorf("failed to write %s: %w", hdr.Name, err)
			}
		case tar.TypeSymlink:
			// the link target must stay inside the tree as well
			resolved := hdr.Linkname
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(filepath.Dir(hdr.Name), resolved)
			}
			if _, err := securePath(destination, resolved); err != nil {
				return err
			}
			links = append(links, [2]string{target, hdr.Linkname})
		default:
			logging.LogDebug("Skipping unsupported tar entry %s (type %c)", hdr.Name, hdr.Typeflag)
		}
	}

	// created last so no regular entry is written through a link
	for _, link := range links {
		if err := os.MkdirAll(filepath.Dir(link[0]), 0755); err != nil {
			return err
		}
		if _, err := os.Lstat(link[0]); err == nil {
			continue
		}
		if err := os.Symlink(link[1], link[0]); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, src io.Reader, mode fs.FileMode) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func fileMode(m fs.FileMode) fs.FileMode {
	if perm := m.Perm(); perm != 0 {
		return perm | 0200
	}
	return 0644
}

func dirMode(m fs.FileMode) fs.FileMode {
	if perm := m.Perm(); perm != 0 {
		return perm | 0700
	}
	return 0755
}
