package model

// Genre is a row of the static genre table
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Mpa is a motion picture rating class
type Mpa struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DefaultGenres is the seed shared by the memory catalog and the migrations
var DefaultGenres = []Genre{
	{ID: 1, Name: "Комедия"},
	{ID: 2, Name: "Драма"},
	{ID: 3, Name: "Мультфильм"},
	{ID: 4, Name: "Триллер"},
	{ID: 5, Name: "Документальный"},
	{ID: 6, Name: "Боевик"},
}

var DefaultMpaRatings = []Mpa{
	{ID: 1, Name: "G", Description: "У фильма нет возрастных ограничений"},
	{ID: 2, Name: "PG", Description: "Детям рекомендуется смотреть фильм с родителями"},
	{ID: 3, Name: "PG-13", Description: "Детям до 13 лет просмотр не желателен"},
	{ID: 4, Name: "R", Description: "Лицам до 17 лет просматривать фильм можно только в присутствии взрослого"},
	{ID: 5, Name: "NC-17", Description: "Лицам до 18 лет просмотр запрещён"},
}
