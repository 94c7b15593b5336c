package npz

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	npyz "github.com/sbinet/npyio/npz"
)

const ext = ".npy"

// Writer builds a .npz bundle. Entries are added with Write and the bundle
// becomes visible at its path on Close.
type Writer struct {
	path     string
	tmp      *os.File
	zw       *zip.Writer
	method   uint16
	keys     map[string]bool
	closed   bool
	writeErr error
}

// Create starts a bundle at path. With compress set entries are deflated,
// as numpy.savez_compressed does; otherwise they are stored.
func Create(path string, compress bool) (*Writer, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	method := zip.Store
	if compress {
		method = zip.Deflate
	}
	return &Writer{
		path:   path,
		tmp:    tmp,
		zw:     zip.NewWriter(tmp),
		method: method,
		keys:   map[string]bool{},
	}, nil
}

// Write adds array a under key. Keys must be unique within a bundle.
func (w *Writer) Write(key string, a Array) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	if w.keys[key] {
		return fmt.Errorf("duplicate bundle key %q", key)
	}
	f, err := w.zw.CreateHeader(&zip.FileHeader{Name: key + ext, Method: w.method})
	if err != nil {
		w.writeErr = err
		return err
	}
	if err := WriteArray(f, a); err != nil {
		w.writeErr = fmt.Errorf("%s: %w", key, err)
		return w.writeErr
	}
	w.keys[key] = true
	return nil
}

// Close finishes the bundle and moves it into place. After a failed Write
// Close only discards the bundle; the error was returned by Write.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	defer os.Remove(w.tmp.Name())

	if w.writeErr != nil {
		w.zw.Close()
		return w.tmp.Close()
	}

	err := w.zw.Close()
	if cerr := w.tmp.Chmod(0o644); err == nil {
		err = cerr
	}
	if cerr := w.tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return os.Rename(w.tmp.Name(), w.path)
}

// Reader gives access to the arrays of a .npz bundle.
type Reader struct {
	zr    *npyz.Reader
	names map[string]string
}

// Open opens the bundle at path.
func Open(path string) (*Reader, error) {
	zr, err := npyz.Open(path)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	for _, name := range zr.Keys() {
		names[strings.TrimSuffix(name, ext)] = name
	}
	return &Reader{zr: zr, names: names}, nil
}

// Keys returns the array names in the bundle, sorted.
func (r *Reader) Keys() []string {
	keys := make([]string, 0, len(r.names))
	for k := range r.names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Read decodes the array stored under key.
func (r *Reader) Read(key string) (Array, error) {
	name, ok := r.names[key]
	if !ok {
		return Array{}, fmt.Errorf("no array %q in bundle", key)
	}
	hdr := r.zr.Header(name)
	if hdr == nil {
		return Array{}, fmt.Errorf("no array %q in bundle", key)
	}
	if hdr.Descr.Fortran {
		return Array{}, fmt.Errorf("%w: %s: only C order arrays are supported", ErrFormat, key)
	}

	a := Array{Descr: hdr.Descr.Type, Shape: append([]int{}, hdr.Descr.Shape...)}
	var err error
	switch a.Descr {
	case Float64:
		a.Floats = make([]float64, a.Len())
		err = r.zr.Read(name, &a.Floats)
	case Int64:
		a.Ints = make([]int64, a.Len())
		err = r.zr.Read(name, &a.Ints)
	default:
		return Array{}, fmt.Errorf("%w: %s: dtype %q", ErrFormat, key, a.Descr)
	}
	if err != nil {
		return Array{}, fmt.Errorf("%s: %w", key, err)
	}
	return a, nil
}

// Close releases the bundle file.
func (r *Reader) Close() error {
	return r.zr.Close()
}
