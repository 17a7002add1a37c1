package services

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/amaumene/mainstream/internal/constants"
	"github.com/amaumene/mainstream/internal/errors"
	"github.com/amaumene/mainstream/internal/media"
	"github.com/amaumene/mainstream/internal/models"
	"github.com/amaumene/mainstream/pkg/logger"
)

// Row is a titled list of records on a browse page.
type Row struct {
	Title   string
	Records []media.Record
	// Ranked rows are numbered in the page.
	Ranked bool
}

// BrowsePage is the content of the home, movies and series pages.
type BrowsePage struct {
	Hero       *media.Record
	HeroVideos Enrichment[[]models.Video]
	Rows       []Row
}

// Trailer selects the hero trailer, if any.
func (p *BrowsePage) Trailer() (media.VideoReference, bool) {
	return media.SelectTrailer(p.HeroVideos.Value)
}

// CatalogGrid is one page of the catalog browser.
type CatalogGrid struct {
	Kind   media.Kind
	Genre  string
	Page   media.CatalogPage
	Genres Enrichment[[]models.Genre]
}

// Catalog assembles pages from several metadata calls.
type Catalog struct {
	tmdb   TMDBService
	logger logger.Logger
}

func NewCatalog(tmdb TMDBService, log logger.Logger) *Catalog {
	if log == nil {
		log = logger.Discard()
	}
	return &Catalog{tmdb: tmdb, logger: log}
}

// primary is a fetch the page cannot be rendered without.
type primary struct {
	name  string
	fetch func(ctx context.Context) (media.CatalogPage, error)
}

type rowLayout struct {
	title  string
	source int
	ranked bool
}

type pageLayout struct {
	name      string
	primaries []primary
	// heroSource is the primary whose first record is the hero.
	heroSource int
	rows       []rowLayout
}

// fetchAll runs every primary concurrently and waits for all of them.
// Results are positional; the first failure in declaration order wins.
func (c *Catalog) fetchAll(ctx context.Context, primaries []primary) ([]media.CatalogPage, error) {
	pages := make([]media.CatalogPage, len(primaries))
	errs := make([]error, len(primaries))

	var wg conc.WaitGroup
	for i, p := range primaries {
		wg.Go(func() {
			pages[i], errs[i] = p.fetch(ctx)
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", primaries[i].name, err)
		}
	}
	return pages, nil
}

func (c *Catalog) assemble(ctx context.Context, layout pageLayout) (*BrowsePage, error) {
	pages, err := c.fetchAll(ctx, layout.primaries)
	if err != nil {
		c.logger.Errorf("[Catalog] %s page failed: %v", layout.name, err)
		return nil, err
	}

	page := &BrowsePage{HeroVideos: NotEnriched[[]models.Video]()}

	heroList := pages[layout.heroSource].Records
	if len(heroList) > 0 {
		hero := heroList[0]
		page.Hero = &hero
		page.HeroVideos = c.heroVideos(ctx, hero)
	}

	for _, r := range layout.rows {
		records := pages[r.source].Records
		if r.ranked {
			records = rankedRow(records)
		}
		page.Rows = append(page.Rows, Row{Title: r.title, Records: records, Ranked: r.ranked})
	}
	return page, nil
}

// rankedRow drops the hero and caps the row.
func rankedRow(records []media.Record) []media.Record {
	if len(records) <= 1 {
		return nil
	}
	records = records[1:]
	if len(records) > constants.RankedRowSize {
		records = records[:constants.RankedRowSize]
	}
	return records
}

func (c *Catalog) heroVideos(ctx context.Context, hero media.Record) Enrichment[[]models.Video] {
	videos, err := c.tmdb.Videos(ctx, hero.Kind, hero.ID())
	if err != nil {
		c.logger.Warnf("[Catalog] videos for %s %d unavailable: %v", hero.Kind, hero.ID(), err)
		return DefaultedTo[[]models.Video](nil, err)
	}
	return Enriched(videos)
}

func (c *Catalog) trendingAll() primary {
	return primary{"trending all", func(ctx context.Context) (media.CatalogPage, error) {
		return c.tmdb.TrendingAll(ctx)
	}}
}

func (c *Catalog) trending(kind media.Kind) primary {
	return primary{"trending " + string(kind), func(ctx context.Context) (media.CatalogPage, error) {
		return c.tmdb.Trending(ctx, kind)
	}}
}

func (c *Catalog) list(kind media.Kind, list string) primary {
	return primary{list + " " + string(kind), func(ctx context.Context) (media.CatalogPage, error) {
		return c.tmdb.List(ctx, kind, list)
	}}
}

// Home builds the landing page. The hero is the first trending title of
// any kind.
func (c *Catalog) Home(ctx context.Context) (*BrowsePage, error) {
	return c.assemble(ctx, pageLayout{
		name: "home",
		primaries: []primary{
			c.trendingAll(),
			c.trending(media.KindMovie),
			c.trending(media.KindSeries),
			c.list(media.KindMovie, ListPopular),
			c.list(media.KindSeries, ListPopular),
			c.list(media.KindMovie, ListTopRated),
			c.list(media.KindSeries, ListTopRated),
		},
		heroSource: 0,
		rows: []rowLayout{
			{"Em Alta", 0, true},
			{"Filmes Populares", 3, false},
			{"Séries Populares", 4, false},
			{"Filmes em Tendência", 1, false},
			{"Séries em Tendência", 2, false},
			{"Filmes Mais Votados", 5, false},
			{"Séries Mais Votadas", 6, false},
		},
	})
}

// Movies builds the movies landing page.
func (c *Catalog) Movies(ctx context.Context) (*BrowsePage, error) {
	return c.assemble(ctx, pageLayout{
		name: "movies",
		primaries: []primary{
			c.trending(media.KindMovie),
			c.list(media.KindMovie, ListPopular),
			c.list(media.KindMovie, ListTopRated),
			c.list(media.KindMovie, ListUpcoming),
			c.list(media.KindMovie, ListNowPlaying),
		},
		heroSource: 0,
		rows: []rowLayout{
			{"Filmes em Tendência", 0, true},
			{"Populares", 1, false},
			{"Em Cartaz", 4, false},
			{"Em Breve", 3, false},
			{"Mais Votados", 2, false},
		},
	})
}

// Series builds the series landing page.
func (c *Catalog) Series(ctx context.Context) (*BrowsePage, error) {
	return c.assemble(ctx, pageLayout{
		name: "series",
		primaries: []primary{
			c.trending(media.KindSeries),
			c.list(media.KindSeries, ListPopular),
			c.list(media.KindSeries, ListTopRated),
			c.list(media.KindSeries, ListOnTheAir),
			c.list(media.KindSeries, ListAiringToday),
		},
		heroSource: 0,
		rows: []rowLayout{
			{"Séries em Tendência", 0, true},
			{"Populares", 1, false},
			{"No Ar", 3, false},
			{"Exibindo Hoje", 4, false},
			{"Mais Votadas", 2, false},
		},
	})
}

// Resolve finds the title a watch URL points at.
//
// With an id, the movie with that id is tried first and then the series,
// unless kind names one of them. Without an id the slug is turned back into
// search text; movies are searched first and series only when no movie
// matched. The first hit wins and is loaded in full.
func (c *Catalog) Resolve(ctx context.Context, slug string, id int, kind media.Kind) (*Title, error) {
	if id > 0 {
		return c.resolveByID(ctx, id, kind)
	}

	query := media.TitleFromSlug(slug)
	if query == "" {
		return nil, errors.NewNotFoundError("empty slug")
	}

	movies, err := c.tmdb.Search(ctx, media.KindMovie, query)
	if err != nil {
		return nil, err
	}
	if len(movies.Records) > 0 {
		return c.movieTitle(ctx, movies.Records[0].ID())
	}

	series, err := c.tmdb.Search(ctx, media.KindSeries, query)
	if err != nil {
		return nil, err
	}
	if len(series.Records) > 0 {
		return c.seriesTitle(ctx, series.Records[0].ID())
	}

	return nil, errors.NewNotFoundError(query)
}

func (c *Catalog) resolveByID(ctx context.Context, id int, kind media.Kind) (*Title, error) {
	switch kind {
	case media.KindMovie:
		return c.movieTitle(ctx, id)
	case media.KindSeries:
		return c.seriesTitle(ctx, id)
	}

	title, movieErr := c.movieTitle(ctx, id)
	if movieErr == nil {
		return title, nil
	}
	if errors.IsConfiguration(movieErr) {
		return nil, movieErr
	}

	title, seriesErr := c.seriesTitle(ctx, id)
	if seriesErr == nil {
		return title, nil
	}

	c.logger.Debugf("[Catalog] id %d is neither a movie (%v) nor a series (%v)", id, movieErr, seriesErr)
	if isUpstreamNotFound(movieErr) && isUpstreamNotFound(seriesErr) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("title %d", id))
	}
	if !isUpstreamNotFound(seriesErr) {
		return nil, seriesErr
	}
	return nil, movieErr
}

func isUpstreamNotFound(err error) bool {
	status, ok := errors.IsUpstream(err)
	return ok && status == 404
}

// SeriesByID loads a series in full.
func (c *Catalog) SeriesByID(ctx context.Context, id int) (*Title, error) {
	return c.seriesTitle(ctx, id)
}

func (c *Catalog) movieTitle(ctx context.Context, id int) (*Title, error) {
	details, err := c.tmdb.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Title{
		Kind:   media.KindMovie,
		Movie:  details,
		IMDbID: c.imdbID(ctx, media.KindMovie, id, details.IMDBID),
	}, nil
}

func (c *Catalog) seriesTitle(ctx context.Context, id int) (*Title, error) {
	details, err := c.tmdb.SeriesDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Title{
		Kind:   media.KindSeries,
		Series: details,
		IMDbID: c.imdbID(ctx, media.KindSeries, id, ""),
	}, nil
}

// imdbID prefers the external ids endpoint and falls back to the id the
// details carried.
func (c *Catalog) imdbID(ctx context.Context, kind media.Kind, id int, fromDetails string) Enrichment[string] {
	ids, err := c.tmdb.ExternalIDs(ctx, kind, id)
	if err != nil {
		c.logger.Warnf("[Catalog] external ids for %s %d unavailable: %v", kind, id, err)
		return DefaultedTo(fromDetails, err)
	}
	if ids.IMDBID != "" {
		return Enriched(ids.IMDBID)
	}
	if fromDetails != "" {
		return Enriched(fromDetails)
	}
	return NotEnriched[string]()
}

// Discover returns a catalog grid page. Pages are clamped to what TMDB
// serves and unknown genres are ignored. The genre list is secondary.
func (c *Catalog) Discover(ctx context.Context, kind media.Kind, page int, genre string) (*CatalogGrid, error) {
	page = min(max(page, 1), constants.MaxDiscoverPage)
	if genre != "" && !constants.IsKnownGenre(string(kind), genre) {
		genre = ""
	}

	grid := &CatalogGrid{Kind: kind, Genre: genre}

	var (
		wg        conc.WaitGroup
		listErr   error
		genres    []models.Genre
		genresErr error
	)
	wg.Go(func() {
		grid.Page, listErr = c.tmdb.Discover(ctx, kind, page, genre)
	})
	wg.Go(func() {
		genres, genresErr = c.tmdb.Genres(ctx, kind)
	})
	wg.Wait()

	if listErr != nil {
		c.logger.Errorf("[Catalog] discover %s page %d failed: %v", kind, page, listErr)
		return nil, listErr
	}
	if genresErr != nil {
		c.logger.Warnf("[Catalog] genres for %s unavailable: %v", kind, genresErr)
		grid.Genres = DefaultedTo[[]models.Genre](nil, genresErr)
	} else {
		grid.Genres = Enriched(genres)
	}
	return grid, nil
}
