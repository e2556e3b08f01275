package model

// Genre is a category of books. Names are unique by lookup-before-insert.
type Genre struct {
	ID   string `json:"id" bson:"_id" db:"id"`
	Name string `json:"name" bson:"name" db:"name"`
}

// GenreURL is the canonical URL of the genre with id.
func GenreURL(id string) string {
	return EntityURL(KindGenre, id)
}

// URL is GenreURL of the genre's id.
func (g Genre) URL() string {
	return GenreURL(g.ID)
}

// GenreOption is a genre as offered on the book form, with Checked set when
// the book being edited references it.
type GenreOption struct {
	Genre
	Checked bool
}

// GenreOptions marks every genre whose id is in selected.
func GenreOptions(genres []Genre, selected []string) []GenreOption {
	set := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}

	out := make([]GenreOption, 0, len(genres))
	for _, g := range genres {
		_, checked := set[g.ID]
		out = append(out, GenreOption{Genre: g, Checked: checked})
	}
	return out
}
