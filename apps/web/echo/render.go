package echoweb

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"math"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/trezcool/eduverse/core/user"
)

//go:embed templates
var templatesFS embed.FS

var printer = message.NewPrinter(language.English)

var templateFuncs = template.FuncMap{
	"currency": currency,
	"number":   func(n int) string { return printer.Sprintf("%d", n) },
	"date":     func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"datetime": func(t time.Time) string { return t.Format("Mon, Jan 2, 2006 3:04 PM") },
	"inc":      func(i int) int { return i + 1 },
	"initial":  initial,
}

// currency formats like "$1,234.50"; whole amounts drop the cents.
func currency(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("$%d", int64(v))
	}
	return printer.Sprintf("$%.2f", v)
}

func initial(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}

// page is what every template receives; Data is the page specific part.
type page struct {
	Title         string
	Path          string
	ThemeClass    string
	User          *user.User
	Authenticated bool
	Data          interface{}
}

func newPage(ctx echo.Context, title string, data interface{}) page {
	p := page{Title: title, Path: ctx.Request().URL.Path, Data: data}
	if v, err := getContextVisitor(ctx); err == nil {
		p.ThemeClass = v.Theme.Class()
		if usr, ok := v.User(); ok {
			p.User = &usr
			p.Authenticated = true
		}
	}
	return p
}

// renderer executes "layout" with the page templates parsed on top of it.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	base, err := template.New("layout.gohtml").
		Funcs(templateFuncs).
		ParseFS(templatesFS, "templates/layout.gohtml", "templates/partials/*.gohtml")
	if err != nil {
		return nil, err
	}

	fps, err := fs.Glob(templatesFS, "templates/pages/*.gohtml")
	if err != nil {
		return nil, err
	}

	r := &renderer{pages: make(map[string]*template.Template, len(fps))}
	for _, fp := range fps {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if tmpl, err = tmpl.ParseFS(templatesFS, fp); err != nil {
			return nil, errors.Wrap(err, fp)
		}
		r.pages[strings.TrimSuffix(path.Base(fp), ".gohtml")] = tmpl
	}
	return r, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown page template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
