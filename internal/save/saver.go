// Package save hands exported artifacts over to the user by writing
// them to a file system under a timestamped name.
package save

import (
	"fmt"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/stateful/buatdocx/pkg/document/docx"
)

var ErrNotDocument = errors.New("artifact is not a docx document")

type Option func(*Saver)

func WithClock(now func() time.Time) Option {
	return func(s *Saver) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Saver) {
		s.logger = logger
	}
}

// Saver writes artifacts into dir of fs.
type Saver struct {
	fs     billy.Filesystem
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// New returns a Saver writing to dir. A nil fs means the OS file system.
func New(fs billy.Filesystem, dir string, opts ...Option) *Saver {
	if fs == nil {
		fs = osfs.Default
	}
	if dir == "" {
		dir = "."
	}

	s := &Saver{
		fs:  fs,
		dir: dir,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	return s
}

// FileName returns the name of an artifact saved at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("document %d.docx", t.UnixMilli())
}

// Save writes data under a timestamped name and returns its path.
func (s *Saver) Save(data []byte) (string, error) {
	return s.SaveAs(path.Join(s.dir, FileName(s.now())), data)
}

// SaveAs writes data to name, which is relative to the Saver's file system
// and not to its directory.
func (s *Saver) SaveAs(name string, data []byte) (_ string, err error) {
	if detected := mimetype.Detect(data); !detected.Is(docx.MIMEType) {
		return "", errors.Wrapf(ErrNotDocument, "detected %s", detected.String())
	}

	if dir := path.Dir(name); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	f, err := s.fs.Create(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", name)
	}
	defer func() {
		err = multierr.Append(err, errors.WithMessage(f.Close(), "failed to close file"))
	}()

	if _, err := f.Write(data); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", name)
	}

	s.logger.Info("saved document", zap.String("path", name), zap.Int("size", len(data)))

	return name, nil
}
