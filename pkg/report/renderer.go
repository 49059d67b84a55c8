package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer writes documents in one format
type Renderer struct {
	w         io.Writer
	format    Format
	styles    map[string]lipgloss.Style
	templates *template.Template
}

// NewRenderer creates a renderer writing to w. FormatAuto must be resolved
// by the caller, see DetectFormat.
func NewRenderer(w io.Writer, format Format) (*Renderer, error) {
	r := &Renderer{w: w, format: format}

	if format == FormatTerminal {
		r.styles = newStyles(lipgloss.NewRenderer(w))
	}

	tmpl, err := template.New("report").
		Funcs(template.FuncMap{"style": r.style}).
		ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse templates")
	}
	r.templates = tmpl

	logger := logging.GetLogger("report")
	logger.Debug().Str("format", format.String()).Msg("Renderer created")
	return r, nil
}

// Scan writes a scan document
func (r *Renderer) Scan(doc Scan) error {
	return r.render("scan.tmpl", doc)
}

// Load writes a load document
func (r *Renderer) Load(doc Load) error {
	return r.render("load.tmpl", doc)
}

// Boot writes a boot document
func (r *Renderer) Boot(doc Boot) error {
	return r.render("boot.tmpl", doc)
}

func (r *Renderer) render(name string, doc any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return wrapEncode(enc.Encode(doc), "json")
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return wrapEncode(err, "yaml")
		}
		return wrapEncode(enc.Close(), "yaml")
	case FormatTOML:
		return wrapEncode(toml.NewEncoder(r.w).Encode(doc), "toml")
	case FormatTerminal, FormatText:
		if err := r.templates.ExecuteTemplate(r.w, name, doc); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to execute template")
		}
		return nil
	default:
		return errors.Newf(errors.ErrInvalidInput, "cannot render format %s", r.format)
	}
}

// style renders text with a named style, or returns it unchanged when
// colors are off
func (r *Renderer) style(name string, v any) string {
	text := fmt.Sprint(v)
	if r.styles == nil {
		return text
	}
	s, ok := r.styles[name]
	if !ok {
		return text
	}
	return s.Render(text)
}

func wrapEncode(err error, format string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, errors.ErrInternal, "failed to encode %s", format)
}
