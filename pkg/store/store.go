package store

// Locations name where pipeline inputs and outputs live. A location is a
// plain filesystem path, a file://host/path URL, or gs://bucket/object for
// Google Cloud Storage.

import(
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadScheme = errors.New("store: bad url scheme")

type Location struct {
	Scheme string // "" for local files
	Bucket string // gs:// only
	Path   string // local path, or gs:// object name
}

func (l Location)IsLocal() bool { return l.Scheme == "" }

func (l Location)String() string {
	if l.IsLocal() {
		return l.Path
	}
	return fmt.Sprintf("%s://%s/%s", l.Scheme, l.Bucket, l.Path)
}

// Parse turns a location string into a Location. file:// URLs become local
// paths.
func Parse(loc string) (Location, error) {
	if !strings.Contains(loc, "://") {
		return Location{Path: loc}, nil
	}

	u, err := url.Parse(loc)
	if err != nil {
		return Location{}, fmt.Errorf("parse '%s': %w", loc, err)
	}

	switch u.Scheme {
	case "file":
		return Location{Path: filepath.Clean(fmt.Sprintf("%v/%v", u.Host, u.Path))}, nil
	case "gs":
		return Location{Scheme: "gs", Bucket: u.Host, Path: strings.TrimLeft(u.Path, "/")}, nil
	}
	return Location{}, fmt.Errorf("%w: '%s'", ErrBadScheme, loc)
}

// Open returns a reader for the location. credentials is the path of a
// service account JSON file, used for gs:// only; empty means the
// application default credentials.
func Open(ctx context.Context, loc, credentials string) (io.ReadCloser, error) {
	l, err := Parse(loc)
	if err != nil {
		return nil, err
	}

	if l.IsLocal() {
		f, err := os.Open(l.Path)
		if err != nil {
			return nil, fmt.Errorf("open+r '%s': %w", l.Path, err)
		}
		return f, nil
	}
	return openGcs(ctx, l.Bucket, l.Path, credentials)
}

// Create returns a writer for the location; an existing object or file is
// overwritten. Callers must Close the writer to complete the write.
func Create(ctx context.Context, loc, credentials string) (io.WriteCloser, error) {
	l, err := Parse(loc)
	if err != nil {
		return nil, err
	}

	if l.IsLocal() {
		f, err := os.Create(l.Path)
		if err != nil {
			return nil, fmt.Errorf("open+w '%s': %w", l.Path, err)
		}
		return f, nil
	}
	return createGcs(ctx, l.Bucket, l.Path, credentials)
}

// ReadAll reads the whole location into memory. The file decoders want
// random access, so inputs are always loaded fully.
func ReadAll(ctx context.Context, loc, credentials string) ([]byte, error) {
	r, err := Open(ctx, loc, credentials)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read '%s': %w", loc, err)
	}
	return b, nil
}

// WriteTo creates the location and hands the writer to fn, closing it
// afterwards. The first error wins.
func WriteTo(ctx context.Context, loc, credentials string, fn func(io.Writer) error) (err error) {
	w, err := Create(ctx, loc, credentials)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close '%s': %w", loc, cerr)
		}
	}()

	return fn(w)
}
