package catalog

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	exercises, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	want := map[string]string{"push-up-1": "Push-up", "squat-1": "Squat", "plank-1": "Plank"}
	if len(exercises) != len(want) {
		t.Fatalf("got %d exercises, want %d", len(exercises), len(want))
	}
	for _, ex := range exercises {
		if want[ex.ID] != ex.Name {
			t.Errorf("unexpected exercise %q = %q", ex.ID, ex.Name)
		}
		if ex.Description == "" || ex.Category == "" || ex.MuscleGroup == "" {
			t.Errorf("exercise %q missing fields: %+v", ex.ID, ex)
		}
	}
}

func TestParseYAML(t *testing.T) {
	src := `
exercise:
  - name: Bench Press
    category: strength
    muscle_group: chest
  - id: row-1
    name: Barbell Row
    muscle_group: back
`
	exercises, err := Parse(strings.NewReader(src), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("got %d exercises", len(exercises))
	}
	if exercises[0].ID != "bench-press-1" || exercises[0].MuscleGroup != "chest" {
		t.Errorf("first = %+v", exercises[0])
	}
	if exercises[1].ID != "row-1" {
		t.Errorf("explicit id not kept: %+v", exercises[1])
	}
}

func TestParseRejectsNamelessEntry(t *testing.T) {
	src := "[[exercise]]\nname = \"Squat\"\n\n[[exercise]]\ndescription = \"no name\"\n"
	_, err := Parse(strings.NewReader(src), FormatTOML)
	if err == nil || !strings.Contains(err.Error(), "exercise 2") {
		t.Fatalf("expected error naming exercise 2, got %v", err)
	}
}

func TestParseInvalidTOML(t *testing.T) {
	if _, err := Parse(strings.NewReader("[[exercise]\nname ="), FormatTOML); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestSlugIDs(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Squat", "squat"},
		{"Push-up", "push-up"},
		{"  Bench Press (Flat) ", "bench-press-flat"},
		{"Romanian   Deadlift", "romanian-deadlift"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Derived ids never collide with explicit ones or each other.
	src := "[[exercise]]\nid = \"squat-1\"\nname = \"Squat\"\n\n[[exercise]]\nname = \"Squat\"\n\n[[exercise]]\nname = \"squat\"\n"
	exercises, err := Parse(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var ids []string
	for _, ex := range exercises {
		ids = append(ids, ex.ID)
	}
	if strings.Join(ids, ",") != "squat-1,squat-2,squat-3" {
		t.Errorf("ids = %v", ids)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"catalog.toml", FormatTOML},
		{"s3://bucket/seed/catalog.YAML", FormatYAML},
		{"catalog.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("FormatFor(%q) = %q, %v", tt.name, got, err)
		}
	}
	if _, err := FormatFor("catalog.json"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

type fakeObjectStore struct {
	objects map[string]string
}

func (f fakeObjectStore) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	body, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(local, []byte("exercise:\n  - name: Lunge\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	exercises, err := Load(context.Background(), local, nil)
	if err != nil {
		t.Fatalf("Load local: %v", err)
	}
	if len(exercises) != 1 || exercises[0].ID != "lunge-1" {
		t.Errorf("local = %+v", exercises)
	}

	objects := fakeObjectStore{objects: map[string]string{
		"seeds/catalog.toml": "[[exercise]]\nname = \"Plank\"\ncategory = \"core\"\n",
	}}
	exercises, err = Load(context.Background(), "s3://seeds/catalog.toml", objects)
	if err != nil {
		t.Fatalf("Load s3: %v", err)
	}
	if len(exercises) != 1 || exercises[0].ID != "plank-1" || exercises[0].Category != "core" {
		t.Errorf("s3 = %+v", exercises)
	}

	if _, err := Load(context.Background(), "s3://seeds/catalog.toml", nil); err == nil {
		t.Error("expected an error without object storage")
	}
}
