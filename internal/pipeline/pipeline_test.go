package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/deppfellow/locallibrary/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shelf struct {
	ID   string
	Name string
	Tags []string
}

type shelfStore struct {
	mu      sync.Mutex
	items   map[string]shelf
	writes  int
	nextID  int
	refErrs errs.FieldErrors
}

func newShelfStore() *shelfStore {
	return &shelfStore{items: make(map[string]shelf)}
}

func (s *shelfStore) persist(_ context.Context, e shelf) (shelf, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if e.ID == "" {
		s.nextID++
		e.ID = fmt.Sprintf("s%d", s.nextID)
	}
	s.items[e.ID] = e
	return e, nil
}

func (s *shelfStore) get(_ context.Context, id string) (shelf, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return shelf{}, fmt.Errorf("table:shelves: %w", repository.ErrNotFound)
	}
	return e, nil
}

func newShelfPipeline(store *shelfStore) *Pipeline[shelf, []string] {
	return &Pipeline[shelf, []string]{
		Kind:       "shelf",
		Template:   "shelf_form",
		Title:      "Create Shelf",
		ListFields: []string{"tag"},
		Rules: []validation.FieldRule{
			{Field: "name", Checks: []validation.Check{validation.Required("Name required")}},
		},
		Sanitizers: []validation.FieldSanitizer{
			{Field: "name", Kind: validation.Text},
			{Field: "tag", Kind: validation.List},
		},
		Build: func(clean validation.Clean, id string) shelf {
			return shelf{ID: id, Name: clean.Text("name"), Tags: clean.List("tag")}
		},
		References: func(context.Context) ([]string, error) {
			return []string{"red", "blue"}, nil
		},
		View: func(e shelf, refs []string) map[string]any {
			return map[string]any{"shelf": e, "tags": refs}
		},
		Check: func(context.Context, shelf) (errs.FieldErrors, error) {
			return store.refErrs, nil
		},
		Persist:  store.persist,
		Location: func(e shelf) string { return "/catalog/shelf/" + e.ID },
	}
}

func TestRunValidPersistsOnceAndRedirects(t *testing.T) {
	store := newShelfStore()
	p := newShelfPipeline(store)

	var after []string
	p.AfterPersist = func(_ context.Context, e shelf) { after = append(after, e.ID) }

	out, err := p.Run(context.Background(), url.Values{"name": {"  Oak  "}, "tag": {"red"}}, "")
	require.NoError(t, err)

	assert.Equal(t, StateRedirected, out.State)
	assert.Equal(t, "/catalog/shelf/s1", out.Location)
	assert.Equal(t, 1, store.writes)
	assert.Equal(t, []string{"s1"}, after)
	assert.Equal(t, shelf{ID: "s1", Name: "Oak", Tags: []string{"red"}}, store.items["s1"])
}

func TestRunInvalidNeverPersistsAndEchoesSanitizedValues(t *testing.T) {
	store := newShelfStore()
	p := newShelfPipeline(store)

	called := false
	p.Check = func(context.Context, shelf) (errs.FieldErrors, error) {
		called = true
		return nil, nil
	}

	out, err := p.Run(context.Background(), url.Values{"name": {"   "}, "tag": {" <b> "}}, "")
	require.NoError(t, err)

	assert.Equal(t, StateRendered, out.State)
	assert.True(t, out.Invalid())
	assert.Equal(t, "shelf_form", out.Template)
	assert.Equal(t, 0, store.writes)
	assert.False(t, called, "reference check only runs on valid candidates")

	assert.Equal(t, "Create Shelf", out.Data["title"])
	assert.Equal(t, []string{"red", "blue"}, out.Data["tags"])
	assert.Equal(t, shelf{Tags: []string{"&lt;b&gt;"}}, out.Data["shelf"])
	assert.Equal(t, []string{"Name required"}, out.Errors.For("name"))
}

func TestRunListFieldAbsentBecomesEmptyList(t *testing.T) {
	store := newShelfStore()
	p := newShelfPipeline(store)

	_, err := p.Run(context.Background(), url.Values{"name": {"Oak"}}, "")
	require.NoError(t, err)

	require.NotNil(t, store.items["s1"].Tags)
	assert.Empty(t, store.items["s1"].Tags)
}

func TestRunReferenceCheckFailureRendersForm(t *testing.T) {
	store := newShelfStore()
	store.refErrs = errs.FieldErrors{{Field: "tag", Error: "Tag does not exist"}}
	p := newShelfPipeline(store)

	out, err := p.Run(context.Background(), url.Values{"name": {"Oak"}}, "")
	require.NoError(t, err)

	assert.True(t, out.Invalid())
	assert.Equal(t, 0, store.writes)
	assert.True(t, out.Errors.Has("tag"))
}

func TestRunUpdateIsIdempotent(t *testing.T) {
	store := newShelfStore()
	store.items["s9"] = shelf{ID: "s9", Name: "Old"}
	p := newShelfPipeline(store)
	form := url.Values{"name": {"New"}, "tag": {"red", "blue"}}

	first, err := p.Run(context.Background(), form, "s9")
	require.NoError(t, err)
	snapshot := store.items["s9"]

	second, err := p.Run(context.Background(), form, "s9")
	require.NoError(t, err)

	assert.Equal(t, first.Location, second.Location)
	assert.Equal(t, "/catalog/shelf/s9", second.Location)
	assert.Equal(t, snapshot, store.items["s9"])
	assert.Len(t, store.items, 1)
}

func TestRunPersistErrorIsReturned(t *testing.T) {
	store := newShelfStore()
	p := newShelfPipeline(store)
	boom := errors.New("boom")
	p.Persist = func(context.Context, shelf) (shelf, error) { return shelf{}, boom }

	_, err := p.Run(context.Background(), url.Values{"name": {"Oak"}}, "")
	assert.ErrorIs(t, err, boom)
}

func TestBlankRendersEmptyForm(t *testing.T) {
	p := newShelfPipeline(newShelfStore())

	out, err := p.Blank(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateRendered, out.State)
	assert.False(t, out.Invalid())
	assert.Equal(t, shelf{}, out.Data["shelf"])
	assert.Equal(t, []string{"red", "blue"}, out.Data["tags"])
}

func TestEditPrefillsStoredEntity(t *testing.T) {
	store := newShelfStore()
	store.items["s1"] = shelf{ID: "s1", Name: "Oak"}
	p := newShelfPipeline(store)

	out, err := p.Edit(context.Background(), func(ctx context.Context) (shelf, error) {
		return store.get(ctx, "s1")
	})
	require.NoError(t, err)
	assert.Equal(t, store.items["s1"], out.Data["shelf"])

	_, err = p.Edit(context.Background(), func(ctx context.Context) (shelf, error) {
		return store.get(ctx, "missing")
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestViewDefaultsToKindKey(t *testing.T) {
	p := &Pipeline[shelf, NoReferences]{Kind: model.KindGenre, Template: "genre_form"}

	out, err := p.Blank(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.Data, "genre")
}

func TestFanOutReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	var ran sync.WaitGroup
	ran.Add(2)

	err := FanOut(context.Background(),
		func(context.Context) error { ran.Done(); return nil },
		func(context.Context) error { ran.Done(); return boom },
	)
	ran.Wait()

	assert.ErrorIs(t, err, boom)
}
