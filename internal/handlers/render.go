package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/mainstream/internal/constants"
	"github.com/amaumene/mainstream/internal/errors"
	"github.com/amaumene/mainstream/internal/seo"
)

//go:embed templates/*.html static/*
var assets embed.FS

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"year": func() int { return time.Now().Year() },
}

// LoadTemplates parses the embedded page templates into r.
func LoadTemplates(r *gin.Engine) error {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	return nil
}

func registerStatic(r *gin.Engine) {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	files := http.FS(static)
	r.StaticFileFS(constants.PlaceholderPoster, "placeholder-poster.svg", files)
	r.StaticFileFS(constants.PlaceholderBackdrop, "placeholder-backdrop.svg", files)
	r.StaticFileFS("/static/search.js", "search.js", files)
}

// basePage carries what the layout needs on every page.
type basePage struct {
	SiteName string
	Meta     seo.Meta
	Nav      string
	// MinQuery is the shortest search the browser sends to the proxy.
	MinQuery    int
	SearchLimit int
}

func (h *Handler) base(meta seo.Meta, nav string) basePage {
	return basePage{
		SiteName:    constants.SiteName,
		Meta:        meta,
		Nav:         nav,
		MinQuery:    constants.SearchMinQueryLength,
		SearchLimit: constants.SearchResultLimit,
	}
}

type errorPage struct {
	basePage
	Status  int
	Message string
}

// renderError answers with the error page matching err.
func (h *Handler) renderError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status == http.StatusNotFound {
		h.renderNotFound(c)
		return
	}

	h.services.Logger.Errorf("[Handler] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

	msg := "Não foi possível carregar o conteúdo. Tente novamente em instantes."
	if errors.IsConfiguration(err) {
		msg = "O serviço ainda não foi configurado."
	}
	meta := seo.Meta{Title: "Erro | " + constants.SiteName}
	c.HTML(status, "error.html", errorPage{basePage: h.base(meta, ""), Status: status, Message: msg})
}

func (h *Handler) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", errorPage{
		basePage: h.base(seo.NotFoundMeta(), ""),
		Status:   http.StatusNotFound,
		Message:  "Título não encontrado.",
	})
}

func (h *Handler) handleNotFound(c *gin.Context) {
	h.renderNotFound(c)
}
