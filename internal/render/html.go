package render

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"

	"github.com/i474232898/weather-normals-comparison/internal/weather"
)

//go:embed templates
var templatesFS embed.FS

var pageTmpl *template.Template

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	pageTmpl, err = template.ParseFS(sub, "*.html")
	return err
}

// LoadTemplates parses the embedded pages. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(templatesFS, "templates")
}

// FormData is the view model for the search form page.
type FormData struct {
	Query string
	Date  string
	Error string
}

func RenderForm(w io.Writer, data *FormData) error {
	if pageTmpl == nil {
		return errors.New("templates not loaded: call render.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "index.html", data)
}

// ResultData is the view model for the result page. The styling classes are
// derived here so the template stays free of comparison logic.
type ResultData struct {
	Report     *weather.Report
	Narrative  string
	HighClass  string
	LowClass   string
	StateClass string
}

func NewResultData(rep *weather.Report) *ResultData {
	return &ResultData{
		Report:     rep,
		Narrative:  rep.Delta.RangeState.Sentence(),
		HighClass:  tendencyClass(rep.Delta.HighTendency),
		LowClass:   tendencyClass(rep.Delta.LowTendency),
		StateClass: stateClass(rep.Delta.RangeState),
	}
}

func RenderResult(w io.Writer, data *ResultData) error {
	if pageTmpl == nil {
		return errors.New("templates not loaded: call render.LoadTemplates during startup")
	}
	return pageTmpl.ExecuteTemplate(w, "result.html", data)
}

func tendencyClass(t weather.Tendency) string {
	switch t {
	case weather.TendencyWarmer:
		return "warmer"
	case weather.TendencyCooler:
		return "cooler"
	default:
		return "steady"
	}
}

func stateClass(s weather.RangeState) string {
	switch s {
	case weather.RangeBothWithin:
		return "ok"
	case weather.RangeNeither:
		return "alert"
	default:
		return "watch"
	}
}
