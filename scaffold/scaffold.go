// Package scaffold writes new migrations, models and controllers into the
// project tree from the stubs embedded next to it.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/jinzhu/inflection"
)

//go:embed stubs/*.tmpl
var stubFiles embed.FS

var stubs = template.Must(template.ParseFS(stubFiles, "stubs/*.tmpl"))

// MigrationIDLayout prefixes migration IDs and file names.
const MigrationIDLayout = "2006_01_02_150405"

// ErrExists is returned when the target file exists and Force is off.
var ErrExists = errors.New("file already exists")

var (
	validName      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	createTableRgx = regexp.MustCompile(`^create_([a-z0-9_]+)_table$`)
)

// Generator writes files below Root.
type Generator struct {
	Root  string
	Force bool
	Now   func() time.Time
}

// New returns a Generator rooted at root using the wall clock.
func New(root string, force bool) *Generator {
	return &Generator{Root: root, Force: force, Now: time.Now}
}

// Migration writes migrations/<timestamp>_<name>.go. A name shaped like
// create_<table>_table produces a create-table migration.
func (g *Generator) Migration(name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("invalid migration name %q", name)
	}
	name = Snake(name)
	id := g.now().Format(MigrationIDLayout) + "_" + name

	stub := "migration.go.tmpl"
	data := map[string]string{"ID": id}
	if m := createTableRgx.FindStringSubmatch(name); m != nil {
		stub = "migration.create.go.tmpl"
		data["Table"] = m[1]
		data["Struct"] = lowerFirst(Camel(inflection.Singular(m[1])))
	}
	return g.write(filepath.Join("migrations", id+".go"), stub, data)
}

// Model writes models/<snake>.go and, when withMigration is set, the matching
// create_<table>_table migration.
func (g *Generator) Model(name string, withMigration bool) ([]string, error) {
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("invalid model name %q", name)
	}
	typeName := Camel(name)
	table := TableName(typeName)

	path, err := g.write(filepath.Join("models", Snake(typeName)+".go"), "model.go.tmpl", map[string]string{
		"Name":  typeName,
		"Table": table,
	})
	if err != nil {
		return nil, err
	}
	written := []string{path}
	if withMigration {
		mpath, err := g.Migration("create_" + table + "_table")
		if err != nil {
			return written, err
		}
		written = append(written, mpath)
	}
	return written, nil
}

// Controller writes controllers/<snake>.go. The Controller suffix is added when
// missing; resource adds the seven resource actions.
func (g *Generator) Controller(name string, resource bool) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("invalid controller name %q", name)
	}
	typeName := Camel(name)
	if !strings.HasSuffix(typeName, "Controller") {
		typeName += "Controller"
	}
	base := strings.TrimSuffix(typeName, "Controller")
	if base == "" {
		return "", fmt.Errorf("invalid controller name %q", name)
	}

	stub := "controller.go.tmpl"
	if resource {
		stub = "controller.resource.go.tmpl"
	}
	return g.write(filepath.Join("controllers", Snake(typeName)+".go"), stub, map[string]string{
		"Name":     typeName,
		"Resource": strings.ReplaceAll(TableName(base), "_", "-"),
	})
}

func (g *Generator) write(rel, stub string, data interface{}) (string, error) {
	path := filepath.Join(g.Root, rel)
	if !g.Force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s: %w", path, ErrExists)
		}
	}

	var buf bytes.Buffer
	if err := stubs.ExecuteTemplate(&buf, stub, data); err != nil {
		return "", fmt.Errorf("render %s: %w", stub, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("format %s: %w", rel, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// TableName is the plural snake_case table of a model, the way gorm names it.
func TableName(model string) string {
	snake := Snake(model)
	i := strings.LastIndex(snake, "_")
	return snake[:i+1] + inflection.Plural(snake[i+1:])
}

// Snake converts CamelCase or mixed input to snake_case.
func Snake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Start a new word unless inside an acronym.
			if i > 0 && runes[i-1] != '_' &&
				(unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Camel converts snake_case or CamelCase input to CamelCase.
func Camel(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
