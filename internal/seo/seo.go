// Package seo produces page titles, descriptions and schema.org structured
// data for the rendered pages.
package seo

import (
	"encoding/json"
	"fmt"

	"github.com/amaumene/mainstream/internal/constants"
	"github.com/amaumene/mainstream/internal/player"
	"github.com/amaumene/mainstream/internal/media"
)

const (
	fallbackUploadDate = "2024-01-01"
	defaultTitle       = constants.SiteName + " - Filmes e Séries"
)

// Meta is the head metadata of a page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
}

func HomeMeta(siteURL string) Meta {
	return Meta{
		Title:       defaultTitle,
		Description: "Descubra os melhores filmes e séries em " + constants.SiteName + ". Assista trailers, veja avaliações e encontre seu próximo entretenimento favorito.",
		Canonical:   siteURL + "/",
	}
}

func MoviesMeta(siteURL string) Meta {
	return Meta{
		Title:       "Filmes | " + constants.SiteName,
		Description: "Descubra os melhores filmes em " + constants.SiteName + ". Filmes populares, em tendência e mais votados.",
		Canonical:   siteURL + "/filmes",
	}
}

func SeriesMeta(siteURL string) Meta {
	return Meta{
		Title:       "Séries | " + constants.SiteName,
		Description: "Descubra as melhores séries em " + constants.SiteName + ". Séries populares, em tendência e mais votadas.",
		Canonical:   siteURL + "/series",
	}
}

func CatalogMeta(siteURL string, kind media.Kind, page int) Meta {
	label := "Filmes"
	if kind == media.KindSeries {
		label = "Séries"
	}
	return Meta{
		Title:       fmt.Sprintf("Catálogo de %s - Página %d | %s", label, page, constants.SiteName),
		Description: fmt.Sprintf("Navegue pelo catálogo completo de %s em %s.", label, constants.SiteName),
		Canonical:   fmt.Sprintf("%s/catalogo/%s?page=%d", siteURL, kind, page),
	}
}

// WatchMeta describes the watch page of a title.
func WatchMeta(siteURL, name, slug, backdrop string) Meta {
	return Meta{
		Title:       Title(name),
		Description: Description(name),
		Canonical:   siteURL + "/assistir/" + slug,
		Image:       backdrop,
	}
}

// NotFoundMeta is used when a watch URL matches nothing.
func NotFoundMeta() Meta {
	return Meta{Title: "Assistir Online | " + constants.SiteName}
}

// Title is the head title of a watch page.
func Title(name string) string {
	return fmt.Sprintf("Assistir %s Filme Completo Dublado | %s", name, constants.SiteName)
}

// Description is the meta description of a watch page.
func Description(name string) string {
	return fmt.Sprintf("Assista %s filme completo dublado online em alta qualidade no %s. O melhor site de streaming gratuito.", name, constants.SiteName)
}

// FormatDuration renders minutes as an ISO 8601 duration, e.g. 102 → PT1H42M.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("PT%dH%dM", minutes/60, minutes%60)
}

type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type Organization struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo ImageObject `json:"logo"`
}

// VideoObject is the schema.org VideoObject embedded on watch pages.
type VideoObject struct {
	Context      string       `json:"@context"`
	Type         string       `json:"@type"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	ThumbnailURL string       `json:"thumbnailUrl"`
	UploadDate   string       `json:"uploadDate"`
	Duration     string       `json:"duration"`
	ContentURL   string       `json:"contentUrl"`
	EmbedURL     string       `json:"embedUrl"`
	Publisher    Organization `json:"publisher"`
}

// VideoInput is what VideoSchema needs to know about a title.
type VideoInput struct {
	Kind       media.Kind
	Name       string
	PosterPath string
	Date       string
	// Runtime in minutes; ignored for series.
	Runtime int
	IMDbID  string
	Slug    string
}

// VideoSchema builds the VideoObject for a watch page.
func VideoSchema(siteURL string, in VideoInput) VideoObject {
	isMovie := in.Kind == media.KindMovie

	name := in.Name + " - Episódio Completo Dublado"
	duration := constants.DefaultEpisodeRuntime
	if isMovie {
		name = in.Name + " - Filme Completo Dublado"
		duration = in.Runtime
	}

	uploadDate := in.Date
	if uploadDate == "" {
		uploadDate = fallbackUploadDate
	}

	return VideoObject{
		Context:      "https://schema.org",
		Type:         "VideoObject",
		Name:         name,
		Description:  fmt.Sprintf("Assista %s completo dublado online no %s.", in.Name, constants.SiteName),
		ThumbnailURL: media.PosterURL(in.PosterPath, ""),
		UploadDate:   uploadDate,
		Duration:     FormatDuration(duration),
		ContentURL:   siteURL + "/assistir/" + in.Slug,
		EmbedURL:     player.StapeURL(in.IMDbID),
		Publisher: Organization{
			Type: "Organization",
			Name: constants.SiteName,
			Logo: ImageObject{Type: "ImageObject", URL: siteURL + "/logo/logo.png"},
		},
	}
}

// JSON encodes v for a ld+json script block.
func (v VideoObject) JSON() (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
