// Package media turns TMDB records into a tagged movie/series variant and
// derives display data from it: title, year, slug, trailer, image URLs.
// Everything here is pure.
package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/amaumene/mainstream/internal/models"
)

// Kind is the provider-side kind of a record. Its values are TMDB's path
// segments, so a Kind can be used to build endpoints directly.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "tv"
)

// ErrUnsupportedKind is returned for records that are neither movies nor
// series, e.g. people in multi-search results.
var ErrUnsupportedKind = errors.New("unsupported media kind")

// ParseKind accepts TMDB's "movie"/"tv" and the site's "series".
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "tv", "series":
		return KindSeries, true
	}
	return "", false
}

// Label is the Portuguese label shown next to a record.
func (k Kind) Label() string {
	if k == KindMovie {
		return "Filme"
	}
	return "Série"
}

// Record is a movie or a series. Kind is decided once, when the record is
// decoded, and exactly one of Movie/Series is set accordingly.
type Record struct {
	Kind   Kind
	Movie  *models.Movie
	Series *models.Series
}

// probe holds the fields used to classify a raw record.
type probe struct {
	MediaType string           `json:"media_type"`
	Title     *json.RawMessage `json:"title"`
}

// Classify decides the kind of a raw record: an explicit movie/tv media_type
// tag wins, otherwise a record carrying a title field is a movie and anything
// else is a series. It never fails; malformed input classifies as a series.
func Classify(raw json.RawMessage) Kind {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return KindSeries
	}
	return p.kind()
}

func (p probe) kind() Kind {
	if k, ok := ParseKind(p.MediaType); ok {
		return k
	}
	if p.Title != nil {
		return KindMovie
	}
	return KindSeries
}

// Decode classifies raw and decodes it into the matching variant. Records
// tagged with any other media_type (e.g. "person") yield ErrUnsupportedKind.
func Decode(raw json.RawMessage) (Record, error) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if p.MediaType != "" {
		if _, ok := ParseKind(p.MediaType); !ok {
			return Record{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, p.MediaType)
		}
	}
	return DecodeAs(p.kind(), raw)
}

// DecodeAs decodes raw as the given kind. Used for kind-scoped endpoints,
// where the endpoint itself decides the kind.
func DecodeAs(kind Kind, raw json.RawMessage) (Record, error) {
	switch kind {
	case KindMovie:
		var m models.Movie
		if err := json.Unmarshal(raw, &m); err != nil {
			return Record{}, fmt.Errorf("decode movie: %w", err)
		}
		return FromMovie(m), nil
	case KindSeries:
		var s models.Series
		if err := json.Unmarshal(raw, &s); err != nil {
			return Record{}, fmt.Errorf("decode series: %w", err)
		}
		return FromSeries(s), nil
	}
	return Record{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, string(kind))
}

// DecodeList decodes every supported record, in order. Unsupported kinds are
// skipped; malformed records are reported.
func DecodeList(raws []json.RawMessage) ([]Record, error) {
	out := make([]Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := Decode(raw)
		if errors.Is(err, ErrUnsupportedKind) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func FromMovie(m models.Movie) Record   { return Record{Kind: KindMovie, Movie: &m} }
func FromSeries(s models.Series) Record { return Record{Kind: KindSeries, Series: &s} }

func (r Record) IsMovie() bool { return r.Kind == KindMovie && r.Movie != nil }

func (r Record) ID() int {
	if r.IsMovie() {
		return r.Movie.ID
	}
	if r.Series != nil {
		return r.Series.ID
	}
	return 0
}

// DisplayTitle returns the title of a movie or the name of a series.
func (r Record) DisplayTitle() string {
	if r.IsMovie() {
		return r.Movie.Title
	}
	if r.Series != nil {
		return r.Series.Name
	}
	return ""
}

func (r Record) OriginalTitle() string {
	if r.IsMovie() {
		return r.Movie.OriginalTitle
	}
	if r.Series != nil {
		return r.Series.OriginalName
	}
	return ""
}

// Date is the release date of a movie or the first-air date of a series.
func (r Record) Date() string {
	if r.IsMovie() {
		return r.Movie.ReleaseDate
	}
	if r.Series != nil {
		return r.Series.FirstAirDate
	}
	return ""
}

// ReleaseYear returns the four-digit year of Date, or "".
func (r Record) ReleaseYear() string {
	return ReleaseYear(r.Date())
}

func (r Record) Overview() string {
	if r.IsMovie() {
		return r.Movie.Overview
	}
	if r.Series != nil {
		return r.Series.Overview
	}
	return ""
}

func (r Record) PosterPath() string {
	if r.IsMovie() {
		return models.StringValue(r.Movie.PosterPath)
	}
	if r.Series != nil {
		return models.StringValue(r.Series.PosterPath)
	}
	return ""
}

func (r Record) BackdropPath() string {
	if r.IsMovie() {
		return models.StringValue(r.Movie.BackdropPath)
	}
	if r.Series != nil {
		return models.StringValue(r.Series.BackdropPath)
	}
	return ""
}

func (r Record) VoteAverage() float64 {
	if r.IsMovie() {
		return r.Movie.VoteAverage
	}
	if r.Series != nil {
		return r.Series.VoteAverage
	}
	return 0
}

// Rating formats VoteAverage with one decimal, e.g. "7.8".
func (r Record) Rating() string {
	return strconv.FormatFloat(r.VoteAverage(), 'f', 1, 64)
}

func (r Record) Slug() string { return Slug(r.DisplayTitle()) }

// WatchPath is the site path of the watch page for r.
func (r Record) WatchPath() string {
	return WatchPath(r.DisplayTitle(), r.ID(), r.Kind)
}

func (r Record) PosterURL() string   { return PosterURL(r.PosterPath(), "") }
func (r Record) BackdropURL() string { return BackdropURL(r.BackdropPath(), "") }

// CatalogPage is one decoded page of a listing. It is built fresh for every
// fetch and not modified afterwards.
type CatalogPage struct {
	Records      []Record
	Page         int
	TotalPages   int
	TotalResults int
}

// DecodePage decodes a listing page. An empty kind means the listing mixes
// kinds and each record is classified on its own; otherwise every record is
// decoded as kind.
func DecodePage(kind Kind, raw models.RawPage) (CatalogPage, error) {
	page := CatalogPage{
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
	}
	if kind == "" {
		recs, err := DecodeList(raw.Results)
		if err != nil {
			return CatalogPage{}, err
		}
		page.Records = recs
		return page, nil
	}
	page.Records = make([]Record, 0, len(raw.Results))
	for i, r := range raw.Results {
		rec, err := DecodeAs(kind, r)
		if err != nil {
			return CatalogPage{}, fmt.Errorf("result %d: %w", i, err)
		}
		page.Records = append(page.Records, rec)
	}
	return page, nil
}
