// Package codegen renders converted timezone records into other artefacts:
// a Go source file embedding the JSON document, and the HTML option list the
// records were extracted from.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-tzformat/components/timezones"
)

const goSourceTemplate = `// Code generated by tzformat{% if source %} from {{ source|safe }}{% endif %}. DO NOT EDIT.

package {{ package|safe }}

// {{ name|safe }} holds {{ count }} timezone records as a compact JSON array.
const {{ name|safe }} = {{ literal|safe }}
`

// Records hold text as it appeared in the option list, so values are written
// verbatim unless the caller asks for escaping.
const htmlOptionsTemplate = `{% for r in records %}{% if escape %}<option value="{{ r.Location }}" >({{ r.GMT }}) {{ r.Location }} - {{ r.Name }}</option>
{% else %}{% autoescape off %}<option value="{{ r.Location }}" >({{ r.GMT }}) {{ r.Location }} - {{ r.Name }}</option>
{% endautoescape %}{% endif %}{% endfor %}`

var (
	compileOnce sync.Once
	goTpl       *pongo2.Template
	htmlTpl     *pongo2.Template
	compileErr  error
)

func templates() (*pongo2.Template, *pongo2.Template, error) {
	compileOnce.Do(func() {
		goTpl, compileErr = pongo2.FromString(goSourceTemplate)
		if compileErr != nil {
			compileErr = fmt.Errorf("codegen: parse go template: %w", compileErr)
			return
		}
		htmlTpl, compileErr = pongo2.FromString(htmlOptionsTemplate)
		if compileErr != nil {
			compileErr = fmt.Errorf("codegen: parse html template: %w", compileErr)
		}
	})
	return goTpl, htmlTpl, compileErr
}

// GoOptions names the generated package and constant.
type GoOptions struct {
	Package string
	Name    string
	// Source is mentioned in the generated header when set.
	Source string
}

func (o GoOptions) withDefaults() GoOptions {
	if strings.TrimSpace(o.Package) == "" {
		o.Package = "tzdata"
	}
	if strings.TrimSpace(o.Name) == "" {
		o.Name = "TimezonesJSON"
	}
	o.Source = strings.Join(strings.Fields(o.Source), " ")
	return o
}

// GoSource renders a gofmt'ed Go file declaring a string constant that holds
// records as compact JSON.
func GoSource(records []timezones.Record, opts GoOptions) ([]byte, error) {
	opts = opts.withDefaults()
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("codegen: invalid package name %q", opts.Package)
	}
	if !token.IsIdentifier(opts.Name) {
		return nil, fmt.Errorf("codegen: invalid constant name %q", opts.Name)
	}

	payload, err := timezones.Marshal(records, 0)
	if err != nil {
		return nil, err
	}

	tpl, _, err := templates()
	if err != nil {
		return nil, err
	}
	out, err := tpl.ExecuteBytes(pongo2.Context{
		"package": opts.Package,
		"name":    opts.Name,
		"source":  opts.Source,
		"count":   len(records),
		"literal": strconv.Quote(string(bytes.TrimSpace(payload))),
	})
	if err != nil {
		return nil, fmt.Errorf("codegen: render go source: %w", err)
	}

	formatted, err := format.Source(out)
	if err != nil {
		return nil, fmt.Errorf("codegen: format go source: %w", err)
	}
	return formatted, nil
}

// HTMLConfig controls HTMLOptions.
type HTMLConfig struct {
	// Escape HTML-escapes locations and names. Use it for records parsed
	// with sanitizing enabled, whose text is already decoded.
	Escape bool
}

// HTMLOptions renders one <option> line per record in the format the
// converter reads.
func HTMLOptions(records []timezones.Record, cfg HTMLConfig) ([]byte, error) {
	_, tpl, err := templates()
	if err != nil {
		return nil, err
	}
	out, err := tpl.ExecuteBytes(pongo2.Context{"records": records, "escape": cfg.Escape})
	if err != nil {
		return nil, fmt.Errorf("codegen: render html options: %w", err)
	}
	return out, nil
}
