// Package media stores uploaded images under the media root.
//
// Uploads arrive as "data:image/...;base64,..." URIs. They are decoded,
// verified to be images, downscaled when oversized and written under
// the media root with fresh uuid4 filenames. Stored files are referred
// to by their path relative to the media root, with forward slashes.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "image/gif"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	kio "github.com/foodgram-dev/foodgram/pkg/io"
)

var ErrBadImage error = errors.New("bad image")

// Subdirectories of the media root, by kind of upload.
const (
	RecipeImages = "recipes/images"
	UserAvatars  = "users/avatars"
)

// DefaultBound is the longest image side kept as is, in pixels.
const DefaultBound = 1000

type Store struct {
	root  string
	bound int
}

type Option func(*Store)

// WithBound overrides the longest image side kept as is.
func WithBound(px int) Option {
	return func(s *Store) { s.bound = px }
}

// New returns a Store writing under root.
func New(root string, options ...Option) *Store {
	s := &Store{root: root, bound: DefaultBound}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SaveDataURI decodes a "data:image/...;base64,..." URI and stores it
// under dir (one of [RecipeImages], [UserAvatars]).
//
// The payload must decode as jpeg, png or gif. Images longer than the
// bound on either side are downscaled to it, keeping the aspect ratio.
// jpeg is stored as jpeg, everything else as png.
//
// # Returns
//
// - string: stored path relative to the media root
//
// - error: [ErrBadImage] when the URI or its payload is not an image,
// or any error from writing the file
func (s *Store) SaveDataURI(dataURI string, dir string) (string, error) {
	head, payload, found := strings.Cut(dataURI, ";base64,")
	if !found || !strings.HasPrefix(head, "data:image/") {
		return "", fmt.Errorf("%w: not a data:image;base64 URI", ErrBadImage)
	}

	// some clients wrap the payload in whitespace
	payload = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, payload)

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	img = s.downscale(img)

	var ext string
	var encode func(io.Writer) error
	switch format {
	case "jpeg":
		ext = ".jpg"
		encode = func(w io.Writer) error { return jpeg.Encode(w, img, nil) }
	default: // png, gif
		ext = ".png"
		encode = func(w io.Writer) error { return png.Encode(w, img) }
	}

	relpath := path.Join(dir, uuid.NewString()+ext)
	name := filepath.Join(s.root, filepath.FromSlash(relpath))
	f, err := kio.CreateAll(name, os.FileMode(0644), os.FileMode(0755))
	if err != nil {
		return "", err
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	return relpath, f.Close()
}

// Remove deletes a stored file.
//
// Empty paths and files already gone are not errors; the point is that
// the file does not exist afterwards.
func (s *Store) Remove(relpath string) error {
	if relpath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relpath)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= s.bound && h <= s.bound {
		return img
	}
	if w >= h {
		return resize.Resize(uint(s.bound), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(s.bound), img, resize.Lanczos3)
}
