package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"quizdeck-client/internal/domain"
)

// Gateway is the backend REST API consumed by the client.
type Gateway interface {
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Signup(ctx context.Context, username, email, password string, admin bool) (domain.User, string, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	GetQuiz(ctx context.Context, id string) (domain.Quiz, error)
	CreateQuiz(ctx context.Context, in domain.QuizInput) (domain.Quiz, error)
	UpdateQuiz(ctx context.Context, id string, in domain.QuizInput) (domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	CreateQuestion(ctx context.Context, quizID string, in domain.QuestionInput) (domain.Question, error)
	UpdateQuestion(ctx context.Context, id string, in domain.QuestionInput) (domain.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
}

// Notifier receives transient user-facing messages from admin flows.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

// Confirmer asks the user to approve a destructive operation before it runs.
type Confirmer func(prompt string) bool

// QuizForm is the create/edit form for a quiz. A non-empty EditingID turns
// submission into an update.
type QuizForm struct {
	Title       string
	Description string
	EditingID   string
}

// QuestionForm is the create/edit form for a question. CorrectAnswerIndex is
// kept as raw user input and validated on submit; Keywords is a
// comma-separated string parsed on submit.
type QuestionForm struct {
	Text               string
	Options            [domain.OptionCount]string
	CorrectAnswerIndex string
	Keywords           string
	QuizID             string
	EditingID          string
}

// AdminPanel orchestrates quiz and question CRUD against the gateway, with a
// list refresh after every mutation. Mutations are guarded by a busy flag so
// a double submission cannot race an in-flight request.
type AdminPanel struct {
	gateway Gateway
	confirm Confirmer
	notify  Notifier

	mu           sync.Mutex
	busy         bool
	quizzes      []domain.Quiz
	questions    []domain.Question
	filterQuizID string
	quizForm     QuizForm
	questionForm QuestionForm
}

func NewAdminPanel(gateway Gateway, confirm Confirmer, notify Notifier) *AdminPanel {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	if notify == nil {
		notify = nopNotifier{}
	}
	return &AdminPanel{gateway: gateway, confirm: confirm, notify: notify}
}

// RefreshQuizzes reloads the quiz list. The previous list is kept on failure.
func (p *AdminPanel) RefreshQuizzes(ctx context.Context) error {
	quizzes, err := p.gateway.ListQuizzes(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.quizzes = quizzes
	p.mu.Unlock()
	return nil
}

// RefreshQuestions reloads the question list: the filter quiz's embedded
// questions when a filter is set, the global list otherwise. The previous
// list is kept on failure.
func (p *AdminPanel) RefreshQuestions(ctx context.Context) error {
	p.mu.Lock()
	filter := p.filterQuizID
	p.mu.Unlock()

	var (
		questions []domain.Question
		err       error
	)
	if filter != "" {
		var quiz domain.Quiz
		if quiz, err = p.gateway.GetQuiz(ctx, filter); err == nil {
			questions = quiz.Questions
		}
	} else {
		questions, err = p.gateway.ListQuestions(ctx)
	}
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.questions = questions
	p.mu.Unlock()
	return nil
}

// SetFilter scopes question listing to one quiz; empty means all quizzes.
func (p *AdminPanel) SetFilter(quizID string) {
	p.mu.Lock()
	p.filterQuizID = quizID
	p.mu.Unlock()
}

// Filter returns the current quiz filter.
func (p *AdminPanel) Filter() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filterQuizID
}

// Quizzes returns a copy of the loaded quiz list.
func (p *AdminPanel) Quizzes() []domain.Quiz {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Quiz, len(p.quizzes))
	copy(out, p.quizzes)
	return out
}

// Questions returns a copy of the loaded question list.
func (p *AdminPanel) Questions() []domain.Question {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Question, len(p.questions))
	copy(out, p.questions)
	return out
}

// SetQuizForm replaces the quiz form.
func (p *AdminPanel) SetQuizForm(form QuizForm) {
	p.mu.Lock()
	p.quizForm = form
	p.mu.Unlock()
}

// QuizForm returns the current quiz form.
func (p *AdminPanel) QuizForm() QuizForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quizForm
}

// EditQuiz loads a quiz into the form for updating.
func (p *AdminPanel) EditQuiz(quiz domain.Quiz) {
	p.SetQuizForm(QuizForm{Title: quiz.Title, Description: quiz.Description, EditingID: quiz.ID})
}

// SubmitQuiz creates or updates a quiz from the form. Validation happens
// before any network call. On success the form is cleared and the quiz list
// reloaded.
func (p *AdminPanel) SubmitQuiz(ctx context.Context) error {
	p.mu.Lock()
	form := p.quizForm
	p.mu.Unlock()

	if strings.TrimSpace(form.Title) == "" {
		return domain.ErrTitleRequired
	}

	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	in := domain.QuizInput{Title: form.Title, Description: form.Description}
	var err error
	if form.EditingID != "" {
		_, err = p.gateway.UpdateQuiz(ctx, form.EditingID, in)
	} else {
		_, err = p.gateway.CreateQuiz(ctx, in)
	}
	if err != nil {
		fallback := "Failed to create quiz"
		if form.EditingID != "" {
			fallback = "Failed to update quiz"
		}
		p.notify.Error(ErrorMessage(err, fallback))
		return err
	}

	if form.EditingID != "" {
		p.notify.Success("Quiz updated!")
	} else {
		p.notify.Success("New Quiz created!")
	}

	p.mu.Lock()
	p.quizForm = QuizForm{}
	p.mu.Unlock()

	if err := p.RefreshQuizzes(ctx); err != nil {
		logrus.WithError(err).Error("quiz list refresh after mutation failed")
	}
	return nil
}

// DeleteQuiz removes a quiz; the backend cascades to its questions. The user
// must confirm first. When the deleted quiz was the active filter, the filter
// is cleared so the next listing falls back to the global list.
func (p *AdminPanel) DeleteQuiz(ctx context.Context, quizID string) error {
	if !p.confirm("Delete this quiz and ALL its questions?") {
		return nil
	}

	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if err := p.gateway.DeleteQuiz(ctx, quizID); err != nil {
		p.notify.Error(ErrorMessage(err, "Failed to delete quiz"))
		return err
	}

	p.mu.Lock()
	if p.filterQuizID == quizID {
		p.filterQuizID = ""
	}
	p.mu.Unlock()

	p.notify.Info("Quiz deleted")
	if err := p.RefreshQuizzes(ctx); err != nil {
		logrus.WithError(err).Error("quiz list refresh after mutation failed")
	}
	return nil
}

// SetQuestionForm replaces the question form.
func (p *AdminPanel) SetQuestionForm(form QuestionForm) {
	p.mu.Lock()
	p.questionForm = form
	p.mu.Unlock()
}

// QuestionForm returns the current question form.
func (p *AdminPanel) QuestionForm() QuestionForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.questionForm
}

// EditQuestion loads a question into the form for updating. The quiz
// selection is kept: a question's quiz association is immutable, the field
// only matters for the next create.
func (p *AdminPanel) EditQuestion(question domain.Question) {
	p.mu.Lock()
	form := QuestionForm{
		Text:               question.Text,
		CorrectAnswerIndex: strconv.Itoa(question.CorrectAnswerIndex),
		Keywords:           strings.Join(question.Keywords, ", "),
		QuizID:             p.questionForm.QuizID,
		EditingID:          question.ID,
	}
	copy(form.Options[:], question.Options)
	p.questionForm = form
	p.mu.Unlock()
}

// SubmitQuestion creates or updates a question from the form. A new question
// must name its quiz. All validation happens before any network call. On
// success the form is cleared except for the quiz selection, kept for the
// next create.
func (p *AdminPanel) SubmitQuestion(ctx context.Context) error {
	p.mu.Lock()
	form := p.questionForm
	p.mu.Unlock()

	if form.EditingID == "" && form.QuizID == "" {
		return domain.ErrQuizRequired
	}
	if strings.TrimSpace(form.Text) == "" {
		return domain.ErrTextRequired
	}
	for _, option := range form.Options {
		if strings.TrimSpace(option) == "" {
			return domain.ErrOptionsRequired
		}
	}
	index, err := ParseCorrectIndex(form.CorrectAnswerIndex)
	if err != nil {
		return err
	}

	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	in := domain.QuestionInput{
		Text:               form.Text,
		Options:            append([]string(nil), form.Options[:]...),
		CorrectAnswerIndex: index,
		Keywords:           ParseKeywords(form.Keywords),
	}

	if form.EditingID != "" {
		_, err = p.gateway.UpdateQuestion(ctx, form.EditingID, in)
	} else {
		_, err = p.gateway.CreateQuestion(ctx, form.QuizID, in)
	}
	if err != nil {
		p.notify.Error(ErrorMessage(err, "Failed to save question"))
		return err
	}

	if form.EditingID != "" {
		p.notify.Success("Question updated!")
	} else {
		p.notify.Success("Question added!")
	}

	p.mu.Lock()
	p.questionForm = QuestionForm{QuizID: form.QuizID}
	p.mu.Unlock()

	if err := p.RefreshQuestions(ctx); err != nil {
		logrus.WithError(err).Error("question list refresh after mutation failed")
	}
	return nil
}

// DeleteQuestion removes a question after confirmation.
func (p *AdminPanel) DeleteQuestion(ctx context.Context, questionID string) error {
	if !p.confirm("Are you sure you want to delete this question?") {
		return nil
	}

	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if err := p.gateway.DeleteQuestion(ctx, questionID); err != nil {
		p.notify.Error(ErrorMessage(err, "Failed to delete question"))
		return err
	}

	p.notify.Info("Question deleted")
	if err := p.RefreshQuestions(ctx); err != nil {
		logrus.WithError(err).Error("question list refresh after mutation failed")
	}
	return nil
}

func (p *AdminPanel) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return domain.ErrBusy
	}
	p.busy = true
	return nil
}

func (p *AdminPanel) end() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}

// ParseKeywords splits a comma-separated keyword string into a trimmed list
// with empties dropped.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if keyword := strings.TrimSpace(part); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

// ParseCorrectIndex validates the correct-answer selector: an integer naming
// one of the four options.
func ParseCorrectIndex(raw string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || index < 0 || index >= domain.OptionCount {
		return 0, domain.ErrCorrectIndexRange
	}
	return index, nil
}

// ErrorMessage extracts the backend's human-readable message from an error,
// falling back to a per-operation default.
func ErrorMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Info(string)    {}
func (nopNotifier) Error(string)   {}
