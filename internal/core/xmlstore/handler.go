// Package xmlstore writes and reads one XML document per object.
//
// A Handler is bound to a single struct type. Documents are written under
// an output directory as <out>/[<subdir>/]<id>.xml and read back from an
// input directory, so that generated files and hand-authored ones stay
// apart.
package xmlstore

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/TahliaK/wight-whale/internal/core/observability/log"
)

const (
	DefaultOutputDir = "Generated"
	DefaultInputDir  = "Files"
	Ext              = ".xml"
)

type options struct {
	outputDir string
	inputDir  string
	logger    log.Log
}

type Option func(*options)

func WithOutputDir(dir string) Option {
	return func(o *options) { o.outputDir = dir }
}

func WithInputDir(dir string) Option {
	return func(o *options) { o.inputDir = dir }
}

func WithLogger(l log.Log) Option {
	return func(o *options) { o.logger = l }
}

type Handler[T any] struct {
	outputDir string
	inputDir  string
	logger    log.Log
	bindErr   error
}

// NewHandler binds a handler to T. A T that is not a struct leaves the
// handler in a failed state: Status reports it and every operation returns
// ErrUnbound.
func NewHandler[T any](opts ...Option) *Handler[T] {
	o := options{
		outputDir: DefaultOutputDir,
		inputDir:  DefaultInputDir,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Provide()
	}

	typ := reflect.TypeFor[T]()
	h := &Handler[T]{
		outputDir: o.outputDir,
		inputDir:  o.inputDir,
		logger:    o.logger.With(log.String("component", "xmlstore"), log.String("type", typ.String())),
	}
	if typ.Kind() != reflect.Struct {
		h.bindErr = fmt.Errorf("%w: %s", ErrUnbound, typ)
		h.logger.Error("Failed to bind handler", log.Error(h.bindErr))
	}
	return h
}

// Status is nil when the handler is usable.
func (h *Handler[T]) Status() error {
	return h.bindErr
}

func (h *Handler[T]) OutputDir() string { return h.outputDir }
func (h *Handler[T]) InputDir() string  { return h.inputDir }

// OutputPath is where Write puts the document for id.
func (h *Handler[T]) OutputPath(subdir, id string) string {
	return filepath.Join(h.outputDir, subdir, id+Ext)
}

// Write stores item as indented XML at OutputPath(subdir, id). Missing
// directories are created and the file is replaced in one rename. id must be
// a plain file name and subdir a relative path that stays below the output
// directory.
func (h *Handler[T]) Write(item *T, subdir, id string) error {
	if h.bindErr != nil {
		return h.bindErr
	}
	if item == nil {
		return ErrNilItem
	}
	if id == "" {
		h.logger.Error("Tried to write item without id", log.String("subdir", subdir))
		return ErrNoID
	}
	if !filepath.IsLocal(id) || filepath.Base(id) != id {
		h.logger.Error("Tried to write item outside the output directory", log.String("id", id))
		return fmt.Errorf("%w: %q", ErrBadID, id)
	}
	if subdir != "" && !filepath.IsLocal(subdir) {
		h.logger.Error("Tried to write item outside the output directory", log.String("subdir", subdir))
		return fmt.Errorf("%w: %q", ErrBadSubdir, subdir)
	}

	path := h.OutputPath(subdir, id)
	data, err := xml.MarshalIndent(item, "", "    ")
	if err != nil {
		h.logger.Error("XML problem", log.String("file", path), log.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrMarshal, path, err)
	}

	if err = writeFile(path, append([]byte(xml.Header), data...)); err != nil {
		h.logger.Error("File problem", log.String("file", path), log.Error(err))
		return err
	}

	h.logger.Debug("Wrote item", log.String("file", path))
	return nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Read decodes <input>/[<subdir>/]<filename>.
func (h *Handler[T]) Read(subdir, filename string) (*T, error) {
	if h.bindErr != nil {
		return nil, h.bindErr
	}
	return h.ReadFile(filepath.Join(h.inputDir, subdir, filename))
}

// ReadFile decodes the document at path.
func (h *Handler[T]) ReadFile(path string) (*T, error) {
	if h.bindErr != nil {
		return nil, h.bindErr
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		h.logger.Error("Couldn't load file", log.String("file", path), log.Error(err))
		return nil, err
	}

	out := new(T)
	if err = xml.Unmarshal(data, out); err != nil {
		h.logger.Error("XML error", log.String("file", path), log.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrUnmarshal, path, err)
	}
	return out, nil
}

// ReadAll decodes every *.xml file directly inside dir. Files that fail are
// skipped and their errors joined.
func (h *Handler[T]) ReadAll(dir string) ([]*T, error) {
	if h.bindErr != nil {
		return nil, h.bindErr
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		h.logger.Error("Couldn't list directory", log.String("dir", dir), log.Error(err))
		return nil, err
	}

	var (
		items []*T
		errs  []error
	)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		item, err := h.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}
	return items, errors.Join(errs...)
}
