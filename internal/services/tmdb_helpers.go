package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/amaumene/mainstream/internal/errors"
	"github.com/amaumene/mainstream/internal/media"
	"github.com/amaumene/mainstream/internal/models"
)

// Listing names shared by /movie/{list} and /tv/{list}.
const (
	ListPopular     = "popular"
	ListTopRated    = "top_rated"
	ListUpcoming    = "upcoming"
	ListNowPlaying  = "now_playing"
	ListOnTheAir    = "on_the_air"
	ListAiringToday = "airing_today"
)

const trendingWindow = "week"

func (t *TMDB) params() url.Values {
	p := url.Values{}
	p.Set("language", t.language)
	return p
}

func (t *TMDB) getJSON(ctx context.Context, endpoint string, params url.Values, dest interface{}) error {
	body, err := t.Fetch(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return errors.NewDecodeError(fmt.Sprintf("failed to decode %s", endpoint), err)
	}
	return nil
}

func (t *TMDB) getPage(ctx context.Context, kind media.Kind, endpoint string, params url.Values) (media.CatalogPage, error) {
	var raw models.RawPage
	if err := t.getJSON(ctx, endpoint, params, &raw); err != nil {
		return media.CatalogPage{}, err
	}
	page, err := media.DecodePage(kind, raw)
	if err != nil {
		return media.CatalogPage{}, errors.NewDecodeError(fmt.Sprintf("failed to decode %s", endpoint), err)
	}
	return page, nil
}

// TrendingAll returns this week's trending movies and series, mixed.
func (t *TMDB) TrendingAll(ctx context.Context) (media.CatalogPage, error) {
	return t.getPage(ctx, "", "/trending/all/"+trendingWindow, t.params())
}

// Trending returns this week's trending records of one kind.
func (t *TMDB) Trending(ctx context.Context, kind media.Kind) (media.CatalogPage, error) {
	return t.getPage(ctx, kind, fmt.Sprintf("/trending/%s/%s", kind, trendingWindow), t.params())
}

// List returns a named listing such as popular or top_rated.
func (t *TMDB) List(ctx context.Context, kind media.Kind, list string) (media.CatalogPage, error) {
	return t.getPage(ctx, kind, fmt.Sprintf("/%s/%s", kind, list), t.params())
}

func (t *TMDB) MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error) {
	var details models.MovieDetails
	if err := t.getJSON(ctx, "/movie/"+strconv.Itoa(id), t.params(), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (t *TMDB) SeriesDetails(ctx context.Context, id int) (*models.SeriesDetails, error) {
	var details models.SeriesDetails
	if err := t.getJSON(ctx, "/tv/"+strconv.Itoa(id), t.params(), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// ExternalIDs returns third-party ids for a title. The IMDb id may be empty.
func (t *TMDB) ExternalIDs(ctx context.Context, kind media.Kind, id int) (*models.ExternalIDs, error) {
	var ids models.ExternalIDs
	if err := t.getJSON(ctx, fmt.Sprintf("/%s/%d/external_ids", kind, id), nil, &ids); err != nil {
		return nil, err
	}
	return &ids, nil
}

// Videos returns the videos of a title in provider order.
func (t *TMDB) Videos(ctx context.Context, kind media.Kind, id int) ([]models.Video, error) {
	var resp models.VideoResponse
	if err := t.getJSON(ctx, fmt.Sprintf("/%s/%d/videos", kind, id), t.params(), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchMulti searches movies and series at once. People are dropped.
func (t *TMDB) SearchMulti(ctx context.Context, query string, page int) (media.CatalogPage, error) {
	p := url.Values{}
	p.Set("query", query)
	p.Set("page", strconv.Itoa(max(page, 1)))
	p.Set("language", t.language)
	p.Set("include_adult", "false")
	return t.getPage(ctx, "", "/search/multi", p)
}

// Search searches titles of a single kind.
func (t *TMDB) Search(ctx context.Context, kind media.Kind, query string) (media.CatalogPage, error) {
	p := url.Values{}
	p.Set("query", query)
	p.Set("language", t.language)
	return t.getPage(ctx, kind, "/search/"+string(kind), p)
}

// Discover lists titles of a kind by popularity, optionally filtered by genre.
func (t *TMDB) Discover(ctx context.Context, kind media.Kind, page int, genre string) (media.CatalogPage, error) {
	p := t.params()
	p.Set("page", strconv.Itoa(page))
	p.Set("sort_by", "popularity.desc")
	p.Set("include_adult", "false")
	if genre != "" {
		p.Set("with_genres", genre)
	}
	return t.getPage(ctx, kind, "/discover/"+string(kind), p)
}

// Genres returns the genre list of a kind.
func (t *TMDB) Genres(ctx context.Context, kind media.Kind) ([]models.Genre, error) {
	var resp models.GenreResponse
	if err := t.getJSON(ctx, fmt.Sprintf("/genre/%s/list", kind), t.params(), &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}
