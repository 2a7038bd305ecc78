// Package catalog reads exercise catalog seed files (TOML or YAML) into
// domain exercises.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
	"unicode"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/storage"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Format is a seed file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Entry is one exercise as written in a seed file.
type Entry struct {
	ID          string `toml:"id" yaml:"id"`
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description" yaml:"description"`
	Category    string `toml:"category" yaml:"category"`
	MuscleGroup string `toml:"muscle_group" yaml:"muscle_group"`
}

// File is the top-level layout of a seed file.
type File struct {
	Exercises []Entry `toml:"exercise" yaml:"exercise"`
}

// FormatFor picks the format from a file name or object key extension.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (want .toml, .yaml or .yml)", ErrUnsupportedFormat, name)
	}
}

// Parse decodes a seed file and converts its entries to exercises.
// Entries without an id get one derived from their name.
func Parse(r io.Reader, format Format) ([]domain.Exercise, error) {
	var file File
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("invalid TOML format: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid YAML format: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return toExercises(file.Exercises)
}

// Default returns the catalog bundled with the binary.
func Default() ([]domain.Exercise, error) {
	return Parse(bytes.NewReader(defaultCatalog), FormatTOML)
}

// Load reads the catalog at location: a local path, or s3://bucket/key read
// through objects. objects may be nil when location is local.
func Load(ctx context.Context, location string, objects storage.ObjectStore) ([]domain.Exercise, error) {
	format, err := FormatFor(location)
	if err != nil {
		return nil, err
	}

	var r io.ReadCloser
	if storage.IsObjectURL(location) {
		if objects == nil {
			return nil, errors.New("object storage is not configured")
		}
		bucket, key, err := storage.ParseObjectURL(location)
		if err != nil {
			return nil, err
		}
		if r, err = objects.Open(ctx, bucket, key); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", location, err)
		}
	} else {
		if r, err = os.Open(location); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}
	defer r.Close()

	return Parse(r, format)
}

func toExercises(entries []Entry) ([]domain.Exercise, error) {
	exercises := make([]domain.Exercise, 0, len(entries))
	taken := make(map[string]bool, len(entries))
	for _, e := range entries {
		if id := strings.TrimSpace(e.ID); id != "" {
			taken[id] = true
		}
	}

	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("exercise %d: name is required", i+1)
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = uniqueSlug(name, taken)
			if id == "" {
				return nil, fmt.Errorf("exercise %d (%s): cannot derive an id from the name", i+1, name)
			}
			taken[id] = true
		}
		exercises = append(exercises, domain.Exercise{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(e.Description),
			Category:    strings.TrimSpace(e.Category),
			MuscleGroup: strings.TrimSpace(e.MuscleGroup),
		})
	}
	return exercises, nil
}

// Slug lowercases name and joins its letters and digits with dashes:
// "Bench Press (Flat)" -> "bench-press-flat".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// uniqueSlug returns the first free "<slug>-N" id, starting at 1.
func uniqueSlug(name string, taken map[string]bool) string {
	base := Slug(name)
	if base == "" {
		return ""
	}
	for n := 1; ; n++ {
		id := base + "-" + strconv.Itoa(n)
		if !taken[id] {
			return id
		}
	}
}
