package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/mainstream/internal/constants"
	"github.com/amaumene/mainstream/internal/errors"
	"github.com/amaumene/mainstream/internal/media"
	"github.com/amaumene/mainstream/internal/player"
	"github.com/amaumene/mainstream/internal/seo"
	"github.com/amaumene/mainstream/internal/services"
)

type browsePage struct {
	basePage
	Page    *services.BrowsePage
	Trailer *media.VideoReference
}

func (h *Handler) handleHome(c *gin.Context) {
	h.renderBrowse(c, h.services.Catalog.Home, seo.HomeMeta(h.config.SiteURL), "home")
}

func (h *Handler) handleMovies(c *gin.Context) {
	h.renderBrowse(c, h.services.Catalog.Movies, seo.MoviesMeta(h.config.SiteURL), "movies")
}

func (h *Handler) handleSeries(c *gin.Context) {
	h.renderBrowse(c, h.services.Catalog.Series, seo.SeriesMeta(h.config.SiteURL), "series")
}

func (h *Handler) renderBrowse(c *gin.Context, build func(context.Context) (*services.BrowsePage, error), meta seo.Meta, nav string) {
	page, err := build(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := browsePage{basePage: h.base(meta, nav), Page: page}
	if trailer, ok := page.Trailer(); ok {
		data.Trailer = &trailer
	}
	if page.Hero != nil {
		data.Meta.Image = page.Hero.BackdropURL()
	}
	c.HTML(http.StatusOK, "browse.html", data)
}

type catalogPage struct {
	basePage
	Heading    string
	Grid       *services.CatalogGrid
	TotalPages int
	PrevURL    string
	NextURL    string
}

func (h *Handler) handleCatalog(c *gin.Context) {
	kind, ok := media.ParseKind(c.Param("type"))
	if !ok {
		h.renderNotFound(c)
		return
	}
	page := queryInt(c, "page", 1)
	genre := c.Query("genre")

	grid, err := h.services.Catalog.Discover(c.Request.Context(), kind, page, genre)
	if err != nil {
		h.renderError(c, err)
		return
	}

	current := grid.Page.Page
	if current < 1 {
		current = 1
	}
	total := min(grid.Page.TotalPages, constants.MaxDiscoverPage)

	data := catalogPage{
		basePage:   h.base(seo.CatalogMeta(h.config.SiteURL, kind, current), "catalog"),
		Heading:    "Catálogo de Filmes",
		Grid:       grid,
		TotalPages: max(total, 1),
	}
	if kind == media.KindSeries {
		data.Heading = "Catálogo de Séries"
	}
	if current > 1 {
		data.PrevURL = catalogURL(kind, current-1, grid.Genre)
	}
	if current < total {
		data.NextURL = catalogURL(kind, current+1, grid.Genre)
	}
	c.HTML(http.StatusOK, "catalog.html", data)
}

func catalogURL(kind media.Kind, page int, genre string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if genre != "" {
		q.Set("genre", genre)
	}
	return fmt.Sprintf("/catalogo/%s?%s", kind, q.Encode())
}

type seasonLink struct {
	Number       int
	EpisodeCount int
	URL          string
	Active       bool
	Episodes     []episodeLink
}

type episodeLink struct {
	Number int
	URL    string
	Active bool
}

type titlePage struct {
	basePage
	Title     *services.Title
	Record    media.Record
	PlayerURL string
	Season    int
	Episode   int
	Seasons   []seasonLink
	Schema    seo.VideoObject
}

func (h *Handler) handleWatch(c *gin.Context) {
	slug := c.Param("slug")
	kind, _ := media.ParseKind(c.Query("type"))

	id := 0
	if raw := c.Query("id"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.renderError(c, errors.NewNotFoundError("id "+raw))
			return
		}
		id = n
	}

	title, err := h.services.Catalog.Resolve(c.Request.Context(), slug, id, kind)
	if err != nil {
		h.renderError(c, err)
		return
	}

	season, episode := queryInt(c, "s", 1), queryInt(c, "e", 1)
	rec := title.Record()

	data := titlePage{
		basePage: h.base(seo.WatchMeta(h.config.SiteURL, title.Name(), slug, rec.BackdropURL()), ""),
		Title:    title,
		Record:   rec,
		Season:   season,
		Episode:  episode,
		Schema: seo.VideoSchema(h.config.SiteURL, seo.VideoInput{
			Kind:       title.Kind,
			Name:       title.Name(),
			PosterPath: rec.PosterPath(),
			Date:       rec.Date(),
			Runtime:    title.Runtime(),
			IMDbID:     title.IMDb(),
			Slug:       slug,
		}),
	}

	if title.IsMovie() {
		data.PlayerURL = player.MovieURL(movieEmbedID(title))
	} else {
		data.PlayerURL = player.EpisodeURL(title.ID(), season, episode)
		base := fmt.Sprintf("/assistir/%s?id=%d&type=%s", url.PathEscape(slug), title.ID(), media.KindSeries)
		data.Seasons = seasonLinks(title, base, season, episode)
	}
	c.HTML(http.StatusOK, "watch.html", data)
}

// movieEmbedID prefers the IMDb id and falls back to the TMDB id.
func movieEmbedID(title *services.Title) string {
	if imdb := title.IMDb(); imdb != "" {
		return imdb
	}
	return strconv.Itoa(title.ID())
}

func (h *Handler) handleTV(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.renderNotFound(c)
		return
	}

	title, err := h.services.Catalog.SeriesByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	season, episode := queryInt(c, "s", 1), queryInt(c, "e", 1)
	rec := title.Record()
	meta := seo.Meta{
		Title:       title.Name() + " | " + constants.SiteName,
		Description: seo.Description(title.Name()),
		Canonical:   fmt.Sprintf("%s/tv/%d", h.config.SiteURL, id),
		Image:       rec.BackdropURL(),
	}

	c.HTML(http.StatusOK, "tv.html", titlePage{
		basePage:  h.base(meta, "series"),
		Title:     title,
		Record:    rec,
		PlayerURL: player.EpisodeURL(id, season, episode),
		Season:    season,
		Episode:   episode,
		Seasons:   seasonLinks(title, fmt.Sprintf("/tv/%d?", id), season, episode),
	})
}

// seasonLinks lists the numbered seasons; the active one also lists its
// episodes. base is a URL that season and episode parameters are appended to.
func seasonLinks(title *services.Title, base string, season, episode int) []seasonLink {
	sep := "&"
	if base[len(base)-1] == '?' {
		sep = ""
	}

	var links []seasonLink
	for _, s := range title.Seasons() {
		link := seasonLink{
			Number:       s.SeasonNumber,
			EpisodeCount: s.EpisodeCount,
			URL:          fmt.Sprintf("%s%ss=%d&e=1", base, sep, s.SeasonNumber),
			Active:       s.SeasonNumber == season,
		}
		if link.Active {
			for e := 1; e <= s.EpisodeCount; e++ {
				link.Episodes = append(link.Episodes, episodeLink{
					Number: e,
					URL:    fmt.Sprintf("%s%ss=%d&e=%d", base, sep, s.SeasonNumber, e),
					Active: e == episode,
				})
			}
		}
		links = append(links, link)
	}
	return links
}

// queryInt reads a positive integer query parameter.
func queryInt(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 1 {
		return def
	}
	return n
}
