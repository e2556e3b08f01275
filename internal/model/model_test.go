package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		family string
		want   string
	}{
		{"both parts", "Isaac", "Asimov", "Asimov, Isaac"},
		{"missing first", "", "Asimov", ""},
		{"missing family", "Isaac", "", ""},
		{"both missing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FullName(tt.first, tt.family))
			assert.Equal(t, tt.want, Author{FirstName: tt.first, FamilyName: tt.family}.Name())
		})
	}
}

func TestLifespan(t *testing.T) {
	years, ok := Lifespan(date(1920, time.January, 2), date(1992, time.April, 6))
	require.True(t, ok)
	assert.Equal(t, 72, years)

	_, ok = Lifespan(nil, date(1992, time.April, 6))
	assert.False(t, ok)

	a := Author{DateOfBirth: date(1920, time.January, 2)}
	assert.Equal(t, "", a.Lifespan())
	a.DateOfDeath = date(1992, time.April, 6)
	assert.Equal(t, "72", a.Lifespan())
}

func TestCanonicalURLs(t *testing.T) {
	assert.Equal(t, "/catalog/author/a1", AuthorURL("a1"))
	assert.Equal(t, "/catalog/genre/g1", Genre{ID: "g1"}.URL())
	assert.Equal(t, "/catalog/book/b1", Book{ID: "b1"}.URL())
	assert.Equal(t, "/catalog/bookinstance/i1", BookInstance{ID: "i1"}.URL())
	assert.Equal(t, "/catalog/genres", ListURL(KindGenre))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusMaintenance, st)

	st, err = ParseStatus("Loaned")
	require.NoError(t, err)
	assert.Equal(t, StatusLoaned, st)

	_, err = ParseStatus("Lost")
	assert.Error(t, err)
}

func TestGenreOptions(t *testing.T) {
	genres := []Genre{{ID: "g1", Name: "Fantasy"}, {ID: "g2", Name: "Poetry"}}
	opts := GenreOptions(genres, []string{"g2"})

	require.Len(t, opts, 2)
	assert.False(t, opts[0].Checked)
	assert.True(t, opts[1].Checked)
}

func TestDateFormatting(t *testing.T) {
	d := date(2024, time.March, 9)
	assert.Equal(t, "Mar 9, 2024", FormatDate(d))
	assert.Equal(t, "2024-03-09", InputDate(d))
	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "", InputDate(&time.Time{}))
}
