// Package festival holds the festival calendar model, the built-in seed
// list, and the calendar merge and filter rules.
package festival

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar date format used throughout.
const DateLayout = "2006-01-02"

// UnknownLocation stands in for a festival listed without a place.
const UnknownLocation = "Unknown"

// ErrSourceNotFound is returned when the festival sheet does not exist.
var ErrSourceNotFound = errors.New("festival source not found")

// Type is the festival category.
type Type string

const (
	TypeReligious Type = "religious"
	TypeCultural  Type = "cultural"
	TypeMusic     Type = "music"
)

// NormalizeType buckets a free-form category by substring; anything unrecognized is cultural.
func NormalizeType(raw string) Type {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "music"):
		return TypeMusic
	case strings.Contains(s, "relig"):
		return TypeReligious
	case strings.Contains(s, "cultur"):
		return TypeCultural
	default:
		return TypeCultural
	}
}

// Festival is one calendar entry. Dates are YYYY-MM-DD.
type Festival struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Location    string `json:"location"`
	Type        Type   `json:"type"`
	Description string `json:"description"`
	Img         string `json:"img,omitempty"`
}

// Covers reports whether day (YYYY-MM-DD) falls within the festival, inclusive.
func (f Festival) Covers(day string) bool {
	end := f.EndDate
	if end == "" {
		end = f.StartDate
	}
	return day >= f.StartDate && day <= end
}

// Source supplies festivals from an external sheet.
type Source interface {
	Festivals(ctx context.Context) ([]Festival, error)
}

// Repository is the persistence contract for the festival mirror.
type Repository interface {
	// ReplaceAll swaps the stored catalog for festivals.
	ReplaceAll(ctx context.Context, festivals []Festival) error

	// List returns the stored catalog ordered by start date.
	List(ctx context.Context) ([]Festival, error)
}

var seed = []Festival{
	{ID: 1, Name: "Losar Festival", StartDate: "2025-02-08", EndDate: "2025-02-10", Location: "Gangtok", Type: TypeReligious,
		Description: "Tibetan New Year celebrated with prayer dances and local feasts.", Img: "/tibetan-new-year-celebration-with-colorful-prayer-.jpg"},
	{ID: 2, Name: "Sikkim International Flower Festival", StartDate: "2025-03-10", EndDate: "2025-03-15", Location: "Gangtok", Type: TypeCultural,
		Description: "Showcases Sikkim's rich biodiversity, floriculture and cultural programs.", Img: "/beautiful-flower-festival-with-rhododendrons-and-o.jpg"},
	{ID: 3, Name: "Pang Lhabsol", StartDate: "2025-09-15", EndDate: "2025-09-15", Location: "Pelling", Type: TypeReligious,
		Description: "Honoring Mount Kanchenjunga with rituals and mask dances.", Img: "/traditional-mask-dance-ceremony-in-mountains.jpg"},
	{ID: 4, Name: "Sikkim Music Festival", StartDate: "2025-06-20", EndDate: "2025-06-22", Location: "Gangtok", Type: TypeMusic,
		Description: "Celebration of local and international music performances.", Img: "/music-festival-stage-with-mountain-backdrop.jpg"},
	{ID: 5, Name: "Bumchu Festival", StartDate: "2025-01-15", EndDate: "2025-01-15", Location: "Tashiding", Type: TypeReligious,
		Description: "Sacred water ceremony at Tashiding Monastery.", Img: "/sacred-water-ceremony-at-buddhist-monastery.jpg"},
	{ID: 6, Name: "Saga Dawa", StartDate: "2025-05-12", EndDate: "2025-05-14", Location: "Gangtok", Type: TypeReligious,
		Description: "Celebrates Buddha's birth, enlightenment, and death.", Img: "/buddhist-celebration-with-prayer-wheels-and-monks.jpg"},
	{ID: 7, Name: "Teej Festival", StartDate: "2025-08-20", EndDate: "2025-08-20", Location: "Namchi", Type: TypeCultural,
		Description: "Hindu festival celebrating the monsoon season.", Img: "/hindu-festival-celebration-with-traditional-dances.jpg"},
	{ID: 8, Name: "Drupka Teshi", StartDate: "2025-07-28", EndDate: "2025-07-28", Location: "Rumtek", Type: TypeReligious,
		Description: "Celebrates Buddha's first sermon.", Img: "/buddhist-monastery-celebration-with-prayer-flags.jpg"},
}

// Seed returns a copy of the built-in festivals.
func Seed() []Festival {
	out := make([]Festival, len(seed))
	copy(out, seed)
	return out
}

// Schedulable keeps the festivals that can be placed on a calendar: those
// with a name and a YYYY-MM-DD start. A missing or malformed end becomes the start.
func Schedulable(festivals []Festival) []Festival {
	out := make([]Festival, 0, len(festivals))
	for _, f := range festivals {
		if strings.TrimSpace(f.Name) == "" || !validDate(f.StartDate) {
			continue
		}
		if !validDate(f.EndDate) {
			f.EndDate = f.StartDate
		}
		out = append(out, f)
	}
	return out
}

func validDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Merge combines base and overrides keyed by id, overrides winning, sorted by start date.
func Merge(base, overrides []Festival) []Festival {
	byID := make(map[int]Festival, len(base)+len(overrides))
	for _, f := range base {
		byID[f.ID] = f
	}
	for _, f := range overrides {
		byID[f.ID] = f
	}

	out := make([]Festival, 0, len(byID))
	for _, f := range byID {
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Filter narrows a calendar. Zero fields match everything.
type Filter struct {
	Query string
	Type  Type
	Date  string
}

// ParseFilter validates raw query values. typ "all" or "" disables the type filter.
func ParseFilter(query, typ, date string) (Filter, error) {
	f := Filter{Query: strings.TrimSpace(query)}
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", "all":
	case string(TypeReligious), string(TypeCultural), string(TypeMusic):
		f.Type = Type(strings.ToLower(strings.TrimSpace(typ)))
	default:
		return Filter{}, errors.New("type must be one of all, religious, cultural, music")
	}
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return Filter{}, errors.New("date must be YYYY-MM-DD")
		}
		f.Date = date
	}
	return f, nil
}

// Apply returns the festivals matching every set criterion.
// Query matches name or location case-insensitively.
func (f Filter) Apply(festivals []Festival) []Festival {
	q := strings.ToLower(f.Query)
	out := make([]Festival, 0, len(festivals))
	for _, fest := range festivals {
		if q != "" && !strings.Contains(strings.ToLower(fest.Name), q) &&
			!strings.Contains(strings.ToLower(fest.Location), q) {
			continue
		}
		if f.Type != "" && fest.Type != f.Type {
			continue
		}
		if f.Date != "" && !fest.Covers(f.Date) {
			continue
		}
		out = append(out, fest)
	}
	return out
}
