package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrUnknownURL is returned for URLs that were never created or were revoked.
var ErrUnknownURL = errors.New("host: unknown object url")

// ObjectURLs hands out temporary URLs for user-supplied files. Each URL is
// backed by a private copy of the file that is deleted on Revoke, so the
// original may change or disappear while the copy is playing.
type ObjectURLs struct {
	dir  string
	seq  int
	live map[string]string // url -> temp path
}

func newObjectURLs(dir string) *ObjectURLs {
	return &ObjectURLs{dir: dir, live: make(map[string]string)}
}

// Create copies src into a temporary file and returns a URL for it.
func (o *ObjectURLs) Create(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("host: open %s: %w", src, err)
	}
	defer in.Close()

	if info, statErr := in.Stat(); statErr == nil && info.IsDir() {
		return "", fmt.Errorf("host: %s is a directory", src)
	}

	out, err := os.CreateTemp(o.dir, "zombiepet-*"+filepath.Ext(src))
	if err != nil {
		return "", fmt.Errorf("host: create temp file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("host: copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("host: close temp file: %w", err)
	}

	o.seq++
	url := fmt.Sprintf("blob:zombiepet/%d", o.seq)
	o.live[url] = out.Name()
	return url, nil
}

// Resolve returns the file path behind a live URL.
func (o *ObjectURLs) Resolve(url string) (string, error) {
	path, ok := o.live[url]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownURL, url)
	}
	return path, nil
}

// Revoke deletes the backing file. Revoking an unknown URL is a no-op.
func (o *ObjectURLs) Revoke(url string) {
	path, ok := o.live[url]
	if !ok {
		return
	}
	delete(o.live, url)
	//nolint:errcheck // Best-effort cleanup of a temp file
	os.Remove(path)
}

// Live returns the number of URLs that have not been revoked.
func (o *ObjectURLs) Live() int {
	return len(o.live)
}
