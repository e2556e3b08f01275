package model

// Book is a title in the catalog. AuthorID and GenreIDs reference existing
// Author and Genre records.
type Book struct {
	ID       string   `json:"id" bson:"_id" db:"id"`
	Title    string   `json:"title" bson:"title" db:"title"`
	AuthorID string   `json:"author" bson:"author" db:"author_id"`
	Summary  string   `json:"summary" bson:"summary" db:"summary"`
	ISBN     string   `json:"isbn" bson:"isbn" db:"isbn"`
	GenreIDs []string `json:"genre" bson:"genre" db:"genre_ids"`
}

// BookURL is the canonical URL of the book with id.
func BookURL(id string) string {
	return EntityURL(KindBook, id)
}

// URL is BookURL of the book's id.
func (b Book) URL() string {
	return BookURL(b.ID)
}

// HasGenre reports whether the book references genreID.
func (b Book) HasGenre(genreID string) bool {
	for _, id := range b.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// BookSummary is a book joined with its author for list and detail pages.
type BookSummary struct {
	Book
	Author Author
}

// BookDetail is a book with its author and genres resolved.
type BookDetail struct {
	Book
	Author Author
	Genres []Genre
}
