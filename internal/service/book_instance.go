package service

import (
	"context"
	"net/url"
	"time"

	"github.com/deppfellow/locallibrary/internal/errs"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/deppfellow/locallibrary/internal/pipeline"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/deppfellow/locallibrary/internal/validation"
	"github.com/rs/zerolog"
)

var now = time.Now

func statusValues() []string {
	out := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		out[i] = string(s)
	}
	return out
}

var bookInstanceRules = []validation.FieldRule{
	{Field: "book", Checks: []validation.Check{validation.Required("Book must be specified")}},
	{Field: "imprint", Checks: []validation.Check{validation.Required("Imprint must be specified")}},
	{Field: "status", Optional: true, Checks: []validation.Check{
		validation.OneOf("Invalid status", statusValues()...),
	}},
	{Field: "due_back", Optional: true, Checks: []validation.Check{
		validation.ISODate("Invalid date"),
	}},
}

var bookInstanceSanitizers = []validation.FieldSanitizer{
	{Field: "book", Kind: validation.Text},
	{Field: "imprint", Kind: validation.Text},
	{Field: "status", Kind: validation.Text},
	{Field: "due_back", Kind: validation.Date},
}

// buildBookInstance keeps the submitted status and due date as sanitized, so
// an invalid form is echoed without defaults filled in.
func buildBookInstance(clean validation.Clean, id string) model.BookInstance {
	instance := model.BookInstance{
		ID:      id,
		BookID:  clean.Text("book"),
		Imprint: clean.Text("imprint"),
		Status:  model.Status(clean.Text("status")),
	}
	if d := clean.Date("due_back"); d != nil {
		instance.DueBack = *d
	}
	return instance
}

// withLoanDefaults fills an empty status with Maintenance and an empty due
// date with now before persisting.
func withLoanDefaults(persist func(context.Context, model.BookInstance) (model.BookInstance, error)) func(context.Context, model.BookInstance) (model.BookInstance, error) {
	return func(ctx context.Context, instance model.BookInstance) (model.BookInstance, error) {
		status, err := model.ParseStatus(string(instance.Status))
		if err != nil {
			status = model.DefaultStatus
		}
		instance.Status = status
		if instance.DueBack.IsZero() {
			instance.DueBack = now()
		}
		return persist(ctx, instance)
	}
}

type BookInstanceService struct {
	repos    *repository.Repositories
	notifier LoanNotifier
	create   *pipeline.Pipeline[model.BookInstance, []model.BookSummary]
	update   *pipeline.Pipeline[model.BookInstance, []model.BookSummary]
	guard    *pipeline.Guard[model.BookInstanceDetail, struct{}]
}

// NewBookInstanceService builds the service. notifier may be nil, in which
// case no loan reminders are scheduled.
func NewBookInstanceService(repos *repository.Repositories, notifier LoanNotifier) *BookInstanceService {
	s := &BookInstanceService{repos: repos, notifier: notifier}

	form := func(title string, persist func(context.Context, model.BookInstance) (model.BookInstance, error)) *pipeline.Pipeline[model.BookInstance, []model.BookSummary] {
		return &pipeline.Pipeline[model.BookInstance, []model.BookSummary]{
			Kind:         model.KindBookInstance,
			Template:     "bookinstance_form",
			Title:        title,
			Rules:        bookInstanceRules,
			Sanitizers:   bookInstanceSanitizers,
			Build:        buildBookInstance,
			References:   repos.Books.List,
			View:         bookInstanceView,
			Check:        s.checkBook,
			Persist:      withLoanDefaults(persist),
			Location:     model.BookInstance.URL,
			AfterPersist: s.remind,
		}
	}

	s.create = form("Create BookInstance", repos.BookInstances.Create)
	s.update = form("Update BookInstance", repos.BookInstances.Update)
	s.guard = &pipeline.Guard[model.BookInstanceDetail, struct{}]{
		Kind:     model.KindBookInstance,
		Template: "bookinstance_delete",
		Title:    "Delete BookInstance",
		Fetch:    s.detail,
		Remove:   repos.BookInstances.Delete,
	}
	return s
}

func bookInstanceView(instance model.BookInstance, books []model.BookSummary) map[string]any {
	return map[string]any{
		"bookinstance":  instance,
		"book_list":     books,
		"selected_book": instance.BookID,
		"statuses":      model.Statuses,
	}
}

func (s *BookInstanceService) checkBook(ctx context.Context, instance model.BookInstance) (errs.FieldErrors, error) {
	return exists("book", "Book not found.", func() error {
		_, err := s.repos.Books.Get(ctx, instance.BookID)
		return err
	})
}

// remind schedules a due-back reminder for a loaned copy. Failures are
// logged; the copy is already stored.
func (s *BookInstanceService) remind(ctx context.Context, instance model.BookInstance) {
	if s.notifier == nil || instance.Status != model.StatusLoaned {
		return
	}

	logger := zerolog.Ctx(ctx).With().Str("bookinstance_id", instance.ID).Logger()

	book, err := s.repos.Books.Get(ctx, instance.BookID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load book for loan reminder")
		return
	}

	if err := s.notifier.ScheduleLoanReminder(ctx, instance, book.Title); err != nil {
		logger.Error().Err(err).Msg("failed to schedule loan reminder")
		return
	}

	logger.Debug().Time("due_back", instance.DueBack).Msg("loan reminder scheduled")
}

// detail loads a copy with its book.
func (s *BookInstanceService) detail(ctx context.Context, id string) (model.BookInstanceDetail, error) {
	instance, err := s.repos.BookInstances.Get(ctx, id)
	if err != nil {
		return model.BookInstanceDetail{}, err
	}
	book, err := s.repos.Books.Get(ctx, instance.BookID)
	if err != nil {
		return model.BookInstanceDetail{}, err
	}
	return model.BookInstanceDetail{BookInstance: instance, Book: book}, nil
}

func (s *BookInstanceService) List(ctx context.Context) (pipeline.Outcome, error) {
	instances, err := s.repos.BookInstances.List(ctx)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	return pipeline.Render("bookinstance_list", map[string]any{
		"title":             "Book Instance List",
		"bookinstance_list": instances,
	}), nil
}

func (s *BookInstanceService) Detail(ctx context.Context, id string) (pipeline.Outcome, error) {
	instance, err := s.detail(ctx, id)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	return pipeline.Render("bookinstance_detail", map[string]any{
		"title":        "Book: " + instance.Book.Title,
		"bookinstance": instance,
	}), nil
}

func (s *BookInstanceService) CreateForm(ctx context.Context) (pipeline.Outcome, error) {
	return s.create.Blank(ctx)
}

func (s *BookInstanceService) Create(ctx context.Context, form url.Values) (pipeline.Outcome, error) {
	return s.create.Run(ctx, form, "")
}

func (s *BookInstanceService) UpdateForm(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.update.Edit(ctx, fetch(id, s.repos.BookInstances.Get))
}

func (s *BookInstanceService) Update(ctx context.Context, id string, form url.Values) (pipeline.Outcome, error) {
	return s.update.Run(ctx, form, id)
}

func (s *BookInstanceService) DeleteForm(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.guard.Confirm(ctx, id)
}

func (s *BookInstanceService) Delete(ctx context.Context, id string) (pipeline.Outcome, error) {
	return s.guard.Delete(ctx, id)
}
