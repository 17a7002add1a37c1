package media

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/amaumene/mainstream/internal/constants"
	"github.com/amaumene/mainstream/internal/models"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
)

// ReleaseYear extracts the year from a TMDB date ("2024-03-01" or "2024").
// Missing or unparseable dates give "".
func ReleaseYear(date string) string {
	date = strings.TrimSpace(date)
	for _, layout := range []string{time.DateOnly, "2006"} {
		if t, err := time.Parse(layout, date); err == nil {
			return fmt.Sprintf("%04d", t.Year())
		}
	}
	return ""
}

// Slug derives a URL-safe identifier from a title: lowercase, diacritics
// stripped, whitespace runs turned into a hyphen, everything outside
// [a-z0-9-] dropped and repeated hyphens collapsed. Slug(Slug(x)) == Slug(x).
//
// Titles written entirely in non-Latin scripts would otherwise produce an
// empty slug; those are transliterated first.
// Distinct titles may share a slug.
func Slug(title string) string {
	s := slugify(title)
	if s == "" && hasLetterOrDigit(title) {
		s = slugify(unidecode.Unidecode(title))
	}
	return s
}

func slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	s = strings.Join(strings.Fields(s), "-")
	s = slugInvalid.ReplaceAllString(s, "")
	return slugDashes.ReplaceAllString(s, "-")
}

func hasLetterOrDigit(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// TitleFromSlug is the search text used when a watch URL carries no id.
func TitleFromSlug(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// VideoReference points at a playable trailer or teaser.
type VideoReference struct {
	Site string
	Key  string
	Type string
	Name string
}

// EmbedURL is the YouTube embed URL used by the trailer modal.
func (v VideoReference) EmbedURL() string {
	return "https://www.youtube.com/embed/" + url.PathEscape(v.Key) + "?autoplay=1&rel=0&modestbranding=1"
}

// SelectTrailer returns the first YouTube video classified as Trailer or
// Teaser, in provider order.
func SelectTrailer(videos []models.Video) (VideoReference, bool) {
	for _, v := range videos {
		if v.Site != constants.TrailerSite {
			continue
		}
		if v.Type == constants.TrailerTypeTrailer || v.Type == constants.TrailerTypeTeaser {
			return VideoReference{Site: v.Site, Key: v.Key, Type: v.Type, Name: v.Name}, true
		}
	}
	return VideoReference{}, false
}

// PosterURL builds a TMDB image URL, or the placeholder when path is empty.
func PosterURL(path, size string) string {
	if path == "" {
		return constants.PlaceholderPoster
	}
	if size == "" {
		size = constants.PosterSize
	}
	return constants.TMDBImageBase + "/" + size + path
}

// BackdropURL builds a TMDB backdrop URL, or the placeholder when path is empty.
func BackdropURL(path, size string) string {
	if path == "" {
		return constants.PlaceholderBackdrop
	}
	if size == "" {
		size = constants.BackdropSize
	}
	return constants.TMDBImageBase + "/" + size + path
}

// WatchPath builds /assistir/{slug}?id={id}&type={kind}. The type lets the
// watch page skip guessing between a movie and a series with the same id.
func WatchPath(title string, id int, kind Kind) string {
	q := url.Values{}
	q.Set("id", fmt.Sprint(id))
	if kind != "" {
		q.Set("type", string(kind))
	}
	slug := Slug(title)
	if slug == "" {
		slug = "titulo"
	}
	return "/assistir/" + slug + "?" + q.Encode()
}
