// Package models defines data structures for TMDB API responses.
package models

import "encoding/json"

// Movie is a movie-shaped list item (trending, popular, search/movie...).
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	MediaType        string  `json:"media_type,omitempty"`
}

// Series is a series-shaped list item.
type Series struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	OriginalName     string   `json:"original_name"`
	Overview         string   `json:"overview"`
	PosterPath       *string  `json:"poster_path"`
	BackdropPath     *string  `json:"backdrop_path"`
	FirstAirDate     string   `json:"first_air_date"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	Popularity       float64  `json:"popularity"`
	GenreIDs         []int    `json:"genre_ids"`
	OriginCountry    []string `json:"origin_country"`
	OriginalLanguage string   `json:"original_language"`
	MediaType        string   `json:"media_type,omitempty"`
}

// Page is one page of a paginated TMDB listing.
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// RawPage keeps results undecoded so each record can be classified on its own.
type RawPage = Page[json.RawMessage]

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GenreResponse struct {
	Genres []Genre `json:"genres"`
}

type Video struct {
	ID          string `json:"id"`
	ISO639      string `json:"iso_639_1"`
	ISO3166     string `json:"iso_3166_1"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Size        int    `json:"size"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
}

type VideoResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

type Company struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

type MovieDetails struct {
	Movie
	Genres              []Genre   `json:"genres"`
	Runtime             int       `json:"runtime"`
	Tagline             string    `json:"tagline"`
	Status              string    `json:"status"`
	Budget              int64     `json:"budget"`
	Revenue             int64     `json:"revenue"`
	IMDBID              string    `json:"imdb_id"`
	ProductionCompanies []Company `json:"production_companies"`
}

type Creator struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SeriesDetails struct {
	Series
	Genres           []Genre   `json:"genres"`
	NumberOfSeasons  int       `json:"number_of_seasons"`
	NumberOfEpisodes int       `json:"number_of_episodes"`
	EpisodeRunTime   []int     `json:"episode_run_time"`
	Status           string    `json:"status"`
	Tagline          string    `json:"tagline"`
	CreatedBy        []Creator `json:"created_by"`
	Seasons          []Season  `json:"seasons"`
}

type Season struct {
	ID           int     `json:"id"`
	SeasonNumber int     `json:"season_number"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	AirDate      string  `json:"air_date"`
	EpisodeCount int     `json:"episode_count"`
	PosterPath   *string `json:"poster_path"`
}
