// Package templates renders the monit configuration files.
//
// Templates are looked up first in the project's template directory, then in
// the ones embedded in the binary.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"webup/monit/domain"
)

const extension = ".tmpl"

//go:embed monit
var builtin embed.FS

type Renderer struct {
	dir string
}

var _ domain.Renderer = (*Renderer)(nil)

// New creates a Renderer. dir may be empty when the project overrides no template.
func New(dir string) *Renderer {
	return &Renderer{dir: dir}
}

func (r *Renderer) Render(templateID string, ctx domain.ExecutionContext) ([]byte, error) {
	content, err := r.read(templateID + extension)
	if err != nil {
		return nil, &domain.RenderError{Template: templateID, Err: err}
	}

	tmpl, err := template.New(templateID).
		Option("missingkey=error").
		Funcs(template.FuncMap{"required": required}).
		Parse(string(content))
	if err != nil {
		return nil, &domain.RenderError{Template: templateID, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewData(ctx)); err != nil {
		return nil, &domain.RenderError{Template: templateID, Err: err}
	}

	return buf.Bytes(), nil
}

// Names returns the names of the available monit templates.
func (r *Renderer) Names() ([]string, error) {
	entries, err := fs.ReadDir(builtin, "monit")
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), extension))
	}
	return names, nil
}

func (r *Renderer) read(file string) ([]byte, error) {
	if r.dir != "" {
		content, err := os.ReadFile(filepath.Join(r.dir, filepath.FromSlash(file)))
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	content, err := fs.ReadFile(builtin, file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrTemplateNotFound
	}
	return content, err
}

func required(name string, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("'%s' is required", name)
		}
	case int:
		if v == 0 {
			return nil, fmt.Errorf("'%s' is required", name)
		}
	}
	return value, nil
}
