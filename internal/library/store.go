// Package library loads the bundled knowledge base and answers search,
// tag and featured-article queries against it.
//
// The Library is read-only once loaded. Everything derived from it (tag
// vocabulary, featured set, filtered views) is computed by pure functions
// that take the Library as an argument, so any number of readers can share
// one loaded instance.
package library

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/claritybreak/internal/entities"
)

//go:embed content/library_content.json
var bundledContent embed.FS

// BundledDocument is the name of the library document compiled into the binary.
const BundledDocument = "content/library_content.json"

// LoadErrorKind classifies why a library document could not be loaded.
type LoadErrorKind string

const (
	LoadErrorMissing   LoadErrorKind = "missing"
	LoadErrorMalformed LoadErrorKind = "malformed"
	LoadErrorSchema    LoadErrorKind = "schema"
)

// LoadError is returned by Store.Load when the document is missing, is not
// valid JSON, or does not have the category/article shape.
type LoadError struct {
	Kind   LoadErrorKind
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load library %s: %s document: %v", e.Source, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is (or wraps) a LoadError.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}

type document struct {
	Categories []categoryDocument `json:"categories" validate:"required,dive"`
}

type categoryDocument struct {
	ID       string            `json:"id" validate:"required"`
	Title    string            `json:"title" validate:"required"`
	Icon     string            `json:"icon" validate:"required"`
	Articles []articleDocument `json:"articles" validate:"required,dive"`
}

type articleDocument struct {
	ID       string   `json:"id" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags" validate:"required,dive,required"`
	Featured *bool    `json:"featured" validate:"required"`
}

// Store reads a library document from a filesystem.
type Store struct {
	fsys     fs.FS
	name     string
	validate *validator.Validate
}

// NewStore creates a store reading the named document from fsys.
func NewStore(fsys fs.FS, name string) *Store {
	return &Store{
		fsys:     fsys,
		name:     name,
		validate: validator.New(),
	}
}

// NewBundledStore creates a store over the document compiled into the binary.
func NewBundledStore() *Store {
	return NewStore(bundledContent, BundledDocument)
}

// NewFileStore creates a store over a document on disk.
func NewFileStore(path string) *Store {
	return NewStore(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// Source describes where the store reads from, for logs and errors.
func (s *Store) Source() string {
	return s.name
}

// Load reads, decodes and validates the document. The returned Library is
// fully populated; on any failure no Library is returned.
func (s *Store) Load(ctx context.Context) (*entities.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return nil, &LoadError{Kind: LoadErrorMissing, Source: s.name, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.parse(data)
}

func (s *Store) parse(data []byte) (*entities.Library, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Kind: classifyDecodeError(err), Source: s.name, Err: err}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &LoadError{Kind: LoadErrorMalformed, Source: s.name, Err: errors.New("trailing data after document")}
	}

	if err := s.validate.Struct(doc); err != nil {
		return nil, &LoadError{Kind: LoadErrorSchema, Source: s.name, Err: err}
	}

	lib := &entities.Library{Categories: make([]entities.Category, 0, len(doc.Categories))}
	seen := make(map[string]string)
	for _, cd := range doc.Categories {
		cat := entities.Category{
			ID:       cd.ID,
			Title:    cd.Title,
			Icon:     entities.IconName(cd.Icon),
			Articles: make([]entities.Article, 0, len(cd.Articles)),
		}
		for _, ad := range cd.Articles {
			if owner, dup := seen[ad.ID]; dup {
				return nil, &LoadError{
					Kind:   LoadErrorSchema,
					Source: s.name,
					Err:    fmt.Errorf("duplicate article id %q in categories %q and %q", ad.ID, owner, cd.ID),
				}
			}
			seen[ad.ID] = cd.ID
			cat.Articles = append(cat.Articles, entities.Article{
				ID:       ad.ID,
				Title:    ad.Title,
				Content:  ad.Content,
				Tags:     slices.Clone(ad.Tags),
				Featured: *ad.Featured,
			})
		}
		lib.Categories = append(lib.Categories, cat)
	}

	return lib, nil
}

// classifyDecodeError separates syntax problems from type and shape problems.
func classifyDecodeError(err error) LoadErrorKind {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return LoadErrorSchema
	}
	// DisallowUnknownFields reports unknown keys as a plain error.
	if strings.HasPrefix(err.Error(), "json: unknown field") {
		return LoadErrorSchema
	}
	return LoadErrorMalformed
}
