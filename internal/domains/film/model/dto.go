package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	refmodel "filmorate-backend/internal/domains/reference/model"
	"filmorate-backend/internal/shared/utils"
)

var notBlank = regexp.MustCompile(`\S`)

// ========================================
// REQUEST DTOs
// ========================================

// MpaRef references a rating by id, other fields in the payload are ignored
type MpaRef struct {
	ID int64 `json:"id"`
}

func (r MpaRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("mpa id is required"), validation.Min(int64(1))),
	)
}

type GenreRef struct {
	ID int64 `json:"id"`
}

func (r GenreRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("genre id is required"), validation.Min(int64(1))),
	)
}

// CreateFilmRequest - POST /films
type CreateFilmRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	ReleaseDate string     `json:"releaseDate"`
	Duration    *int       `json:"duration,omitempty"`
	Mpa         *MpaRef    `json:"mpa"`
	Genres      []GenreRef `json:"genres,omitempty"`
}

func (r CreateFilmRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules()...),
		validation.Field(&r.Description, descriptionRules()...),
		validation.Field(&r.ReleaseDate, releaseDateRules()...),
		validation.Field(&r.Duration, durationRules()...),
		validation.Field(&r.Mpa, validation.Required.Error("mpa is required")),
		validation.Field(&r.Genres),
	)
}

func (r CreateFilmRequest) ToEntity() (*Film, error) {
	return toEntity(0, r.Name, r.Description, r.ReleaseDate, r.Duration, r.Mpa, r.Genres)
}

// UpdateFilmRequest - PUT /films
// Absent description, duration or genres keep their stored values.
type UpdateFilmRequest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	ReleaseDate string     `json:"releaseDate"`
	Duration    *int       `json:"duration,omitempty"`
	Mpa         *MpaRef    `json:"mpa"`
	Genres      []GenreRef `json:"genres,omitempty"`
}

func (r UpdateFilmRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("id is required"), validation.Min(int64(1))),
		validation.Field(&r.Name, nameRules()...),
		validation.Field(&r.Description, descriptionRules()...),
		validation.Field(&r.ReleaseDate, releaseDateRules()...),
		validation.Field(&r.Duration, durationRules()...),
		validation.Field(&r.Mpa, validation.Required.Error("mpa is required")),
		validation.Field(&r.Genres),
	)
}

func (r UpdateFilmRequest) ToEntity() (*Film, error) {
	return toEntity(r.ID, r.Name, r.Description, r.ReleaseDate, r.Duration, r.Mpa, r.Genres)
}

func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("name must not be blank"),
		validation.Match(notBlank).Error("name must not be blank"),
		validation.Length(1, 255),
	}
}

func descriptionRules() []validation.Rule {
	return []validation.Rule{
		validation.RuneLength(0, MaxDescriptionLength).Error("description must be at most 200 characters"),
	}
}

func releaseDateRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("release date is required"),
		validation.Date(utils.DateLayout).
			Min(EarliestReleaseDate).
			Error("release date must be in YYYY-MM-DD format").
			RangeError("release date must not be before 1895-12-28"),
	}
}

// durationRules rejects zero as well, which Min would treat as empty
func durationRules() []validation.Rule {
	return []validation.Rule{
		validation.By(func(value interface{}) error {
			if d, _ := value.(*int); d != nil && *d <= 0 {
				return errors.New("duration must be positive")
			}
			return nil
		}),
	}
}

func toEntity(id int64, name string, description *string, releaseDate string, duration *int, mpa *MpaRef, genres []GenreRef) (*Film, error) {
	released, err := utils.ParseDate(releaseDate)
	if err != nil {
		return nil, err
	}

	f := &Film{
		ID:          id,
		Name:        name,
		Description: description,
		ReleaseDate: released,
		Duration:    duration,
	}
	if mpa != nil {
		f.Mpa = refmodel.Mpa{ID: mpa.ID}
	}
	if genres != nil {
		f.Genres = make([]refmodel.Genre, len(genres))
		for i, g := range genres {
			f.Genres[i] = refmodel.Genre{ID: g.ID}
		}
	}
	return f, nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type FilmResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	ReleaseDate string           `json:"releaseDate"`
	Duration    *int             `json:"duration,omitempty"`
	Mpa         refmodel.Mpa     `json:"mpa"`
	Genres      []refmodel.Genre `json:"genres"`
	Rate        int              `json:"rate"`
}

func (f *Film) ToResponse() *FilmResponse {
	genres := f.Genres
	if genres == nil {
		genres = []refmodel.Genre{}
	}
	return &FilmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate.Format(utils.DateLayout),
		Duration:    f.Duration,
		Mpa:         f.Mpa,
		Genres:      genres,
		Rate:        f.Rate,
	}
}

func ToResponses(films []*Film) []*FilmResponse {
	out := make([]*FilmResponse, len(films))
	for i, f := range films {
		out[i] = f.ToResponse()
	}
	return out
}
