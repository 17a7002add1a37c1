package services

import (
	"github.com/amaumene/mainstream/internal/media"
	"github.com/amaumene/mainstream/internal/models"
)

// Title is a fully resolved movie or series, as shown on the watch page.
// Exactly one of Movie/Series is set, matching Kind.
type Title struct {
	Kind   media.Kind
	Movie  *models.MovieDetails
	Series *models.SeriesDetails
	IMDbID Enrichment[string]
}

// Record returns the list-level view of t.
func (t *Title) Record() media.Record {
	if t.Kind == media.KindMovie && t.Movie != nil {
		return media.FromMovie(t.Movie.Movie)
	}
	if t.Series != nil {
		return media.FromSeries(t.Series.Series)
	}
	return media.Record{Kind: t.Kind}
}

func (t *Title) IsMovie() bool { return t.Kind == media.KindMovie }

func (t *Title) ID() int          { return t.Record().ID() }
func (t *Title) Name() string     { return t.Record().DisplayTitle() }
func (t *Title) Overview() string { return t.Record().Overview() }

func (t *Title) Genres() []models.Genre {
	if t.IsMovie() && t.Movie != nil {
		return t.Movie.Genres
	}
	if t.Series != nil {
		return t.Series.Genres
	}
	return nil
}

// Runtime is the movie runtime in minutes, or 0 for series and unknown values.
func (t *Title) Runtime() int {
	if t.IsMovie() && t.Movie != nil {
		return t.Movie.Runtime
	}
	return 0
}

// Seasons returns the numbered seasons of a series; specials (season 0) are
// left out.
func (t *Title) Seasons() []models.Season {
	if t.Series == nil {
		return nil
	}
	out := make([]models.Season, 0, len(t.Series.Seasons))
	for _, s := range t.Series.Seasons {
		if s.SeasonNumber > 0 {
			out = append(out, s)
		}
	}
	return out
}

// IMDb returns the IMDb id, or "" when it is unknown.
func (t *Title) IMDb() string {
	return t.IMDbID.Value
}
