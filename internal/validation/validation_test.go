package validation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nameRules = []FieldRule{
	{Field: "first_name", Checks: []Check{
		Required("First name must be specified."),
		MaxLength(100, "First name must not exceed 100 characters."),
		Alphanumeric("First name has non-alphanumeric characters."),
	}},
	{Field: "date_of_birth", Optional: true, Checks: []Check{ISODate("Invalid date")}},
}

func TestValidate_LengthBoundary(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"exactly 100 characters", 100, false},
		{"101 characters", 101, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Normalize(url.Values{"first_name": {strings.Repeat("a", tt.length)}})
			result := Validate(fields, nameRules)
			assert.Equal(t, tt.wantErr, result.Has("first_name"))
		})
	}
}

func TestValidate_TrimsBeforeChecking(t *testing.T) {
	fields := Normalize(url.Values{"first_name": {"   "}})
	result := Validate(fields, nameRules)

	require.Len(t, result, 1)
	assert.Equal(t, "first_name", result[0].Field)
	assert.Equal(t, "First name must be specified.", result[0].Error)
}

func TestValidate_StopsAtFirstFailurePerField(t *testing.T) {
	fields := Normalize(url.Values{"first_name": {"Jean-Luc"}})
	result := Validate(fields, nameRules)

	assert.Equal(t, []string{"First name has non-alphanumeric characters."}, result.For("first_name"))
}

func TestValidate_OptionalDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty is exempt", "", nil},
		{"date", "1920-01-02", nil},
		{"date-time", "1920-01-02T10:00:00Z", nil},
		{"malformed", "not-a-date", []string{"Invalid date"}},
		{"impossible calendar day", "2021-02-30", []string{"Invalid date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Normalize(url.Values{"first_name": {"Isaac"}, "date_of_birth": {tt.value}})
			result := Validate(fields, nameRules)
			assert.Equal(t, tt.want, result.For("date_of_birth"))
		})
	}
}

func TestValidate_OrderFollowsRules(t *testing.T) {
	rules := []FieldRule{
		{Field: "title", Checks: []Check{Required("Title must not be empty.")}},
		{Field: "author", Checks: []Check{Required("Author must not be empty.")}},
		{Field: "status", Optional: true, Checks: []Check{OneOf("Invalid status", "Available", "Loaned")}},
	}
	result := Validate(Normalize(url.Values{"status": {"Lost"}}), rules)

	require.Len(t, result, 3)
	assert.Equal(t, "title", result[0].Field)
	assert.Equal(t, "author", result[1].Field)
	assert.Equal(t, "Invalid status", result[2].Error)
}

func TestValidate_FallbackMessage(t *testing.T) {
	rules := []FieldRule{{Field: "isbn", Checks: []Check{{Tag: "required"}}}}
	result := Validate(Normalize(url.Values{}), rules)

	assert.Equal(t, []string{"is required"}, result.For("isbn"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want []string
	}{
		{"absent", url.Values{}, []string{}},
		{"scalar", url.Values{"genre": {"g1"}}, []string{"g1"}},
		{"many", url.Values{"genre": {"g1", "g2"}}, []string{"g1", "g2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Normalize(tt.form, "genre")
			assert.Equal(t, tt.want, f.List("genre"))
		})
	}

	f := Normalize(url.Values{"title": {"first", "second"}}, "genre")
	assert.Equal(t, "first", f.Value("title"))
	assert.Equal(t, "", f.Value("missing"))
}

func TestSanitize(t *testing.T) {
	form := url.Values{
		"name":     {"  <b>Fiction</b> & 'More'  "},
		"genre":    {" g1 ", "<g2>"},
		"due_back": {" 2024-05-01 "},
		"bad_date": {"not-a-date"},
	}
	clean := Sanitize(Normalize(form, "genre"), []FieldSanitizer{
		{Field: "name", Kind: Text},
		{Field: "genre", Kind: List},
		{Field: "due_back", Kind: Date},
		{Field: "bad_date", Kind: Date},
		{Field: "missing", Kind: Date},
	})

	assert.Equal(t, "&lt;b&gt;Fiction&lt;&#x2F;b&gt; &amp; &#x27;More&#x27;", clean.Text("name"))
	assert.Equal(t, []string{"g1", "&lt;g2&gt;"}, clean.List("genre"))
	require.NotNil(t, clean.Date("due_back"))
	assert.Equal(t, "2024-05-01", clean.Date("due_back").Format("2006-01-02"))
	assert.Nil(t, clean.Date("bad_date"))
	assert.Nil(t, clean.Date("missing"))
	assert.Equal(t, []string{}, clean.List("undeclared"))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a&amp;b&quot;c&#x5C;d&#96;", Escape("a&b\"c\\d`"))
	assert.Equal(t, "Fiction", Escape("Fiction"))
}
