package model

import (
	"time"

	refmodel "filmorate-backend/internal/domains/reference/model"
)

// DefaultPopularLimit is used when the caller asks for zero or fewer films
const DefaultPopularLimit = 10

// MaxDescriptionLength counts runes, not bytes
const MaxDescriptionLength = 200

// EarliestReleaseDate is the date of the first public film screening
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Film is the canonical film record.
//
// Genres and Rate are derived on every read: Genres from the film/genre
// association and Rate from the like index. On update a nil Description
// or Duration keeps the stored value, and a nil Genres slice keeps the
// stored genre set while an empty non-nil slice clears it.
type Film struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	ReleaseDate time.Time        `json:"release_date"`
	Duration    *int             `json:"duration,omitempty"`
	Mpa         refmodel.Mpa     `json:"mpa"`
	Genres      []refmodel.Genre `json:"genres,omitempty"`
	Rate        int              `json:"rate"`
}

// Clone returns a deep copy so stored records never alias caller memory
func (f *Film) Clone() *Film {
	c := *f
	if f.Description != nil {
		d := *f.Description
		c.Description = &d
	}
	if f.Duration != nil {
		d := *f.Duration
		c.Duration = &d
	}
	if f.Genres != nil {
		c.Genres = make([]refmodel.Genre, len(f.Genres))
		copy(c.Genres, f.Genres)
	}
	return &c
}

// GenreIDs lists the referenced genre ids, nil when Genres is nil
func (f *Film) GenreIDs() []int64 {
	if f.Genres == nil {
		return nil
	}
	ids := make([]int64, len(f.Genres))
	for i, g := range f.Genres {
		ids[i] = g.ID
	}
	return ids
}

// Merge applies the partial replace policy of an update onto f
func (f *Film) Merge(upd *Film) {
	f.Name = upd.Name
	f.ReleaseDate = upd.ReleaseDate
	f.Mpa = upd.Mpa
	if upd.Description != nil {
		d := *upd.Description
		f.Description = &d
	}
	if upd.Duration != nil {
		d := *upd.Duration
		f.Duration = &d
	}
	if upd.Genres != nil {
		f.Genres = make([]refmodel.Genre, len(upd.Genres))
		copy(f.Genres, upd.Genres)
	}
}
