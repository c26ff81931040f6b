package app_test

import (
	"errors"
	"testing"

	"quizdeck-client/internal/app"
	"quizdeck-client/internal/domain"
)

func threeQuestionQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    "quiz-1",
		Title: "Basics",
		Questions: []domain.Question{
			{ID: "q1", Text: "First?", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 1},
			{ID: "q2", Text: "Second?", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 0},
			{ID: "q3", Text: "Third?", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 2},
		},
	}
}

func TestNewAttemptInitialState(t *testing.T) {
	attempt, err := app.NewAttempt(threeQuestionQuiz())
	if err != nil {
		t.Fatalf("new attempt: %v", err)
	}
	if attempt.Index() != 0 {
		t.Fatalf("expected index 0, got %d", attempt.Index())
	}
	answers := attempt.Answers()
	if len(answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(answers))
	}
	for i, answer := range answers {
		if answer != app.Unanswered {
			t.Fatalf("expected answers[%d] unanswered, got %d", i, answer)
		}
	}
	if attempt.Completed() {
		t.Fatalf("fresh attempt must not be completed")
	}
}

func TestNewAttemptRejectsEmptyQuiz(t *testing.T) {
	_, err := app.NewAttempt(domain.Quiz{ID: "q1"})
	if !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestAdvanceBlockedWhenUnanswered(t *testing.T) {
	attempt, _ := app.NewAttempt(threeQuestionQuiz())

	if err := attempt.Advance(); !errors.Is(err, domain.ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered, got %v", err)
	}
	if attempt.Index() != 0 || attempt.Completed() {
		t.Fatalf("blocked advance must leave state unchanged: index=%d completed=%v",
			attempt.Index(), attempt.Completed())
	}
}

func TestSelectOptionOverwrites(t *testing.T) {
	attempt, _ := app.NewAttempt(threeQuestionQuiz())

	if err := attempt.SelectOption(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := attempt.SelectOption(2); err != nil {
		t.Fatalf("re-select: %v", err)
	}
	if got := attempt.Answers()[0]; got != 2 {
		t.Fatalf("expected last choice to win, got %d", got)
	}
}

func TestSelectOptionBounds(t *testing.T) {
	attempt, _ := app.NewAttempt(threeQuestionQuiz())

	if err := attempt.SelectOption(4); !errors.Is(err, domain.ErrOptionOutOfRange) {
		t.Fatalf("expected ErrOptionOutOfRange, got %v", err)
	}
	if err := attempt.SelectOption(-1); !errors.Is(err, domain.ErrOptionOutOfRange) {
		t.Fatalf("expected ErrOptionOutOfRange, got %v", err)
	}
}

func TestRetreatKeepsAnswer(t *testing.T) {
	attempt, _ := app.NewAttempt(threeQuestionQuiz())

	if err := attempt.Retreat(); !errors.Is(err, domain.ErrAtFirstQuestion) {
		t.Fatalf("expected ErrAtFirstQuestion, got %v", err)
	}

	_ = attempt.SelectOption(1)
	if err := attempt.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := attempt.Retreat(); err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if attempt.Index() != 0 {
		t.Fatalf("expected index 0 after retreat, got %d", attempt.Index())
	}
	if got := attempt.Answers()[0]; got != 1 {
		t.Fatalf("retreat must keep the answer, got %d", got)
	}
}

func TestFullRunScoresExactMatches(t *testing.T) {
	attempt, _ := app.NewAttempt(threeQuestionQuiz())

	for _, answer := range []int{1, 0, 2} {
		if err := attempt.SelectOption(answer); err != nil {
			t.Fatalf("select: %v", err)
		}
		if err := attempt.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	if !attempt.Completed() {
		t.Fatalf("expected completed attempt")
	}
	if attempt.Score() != 3 {
		t.Fatalf("expected perfect score, got %d", attempt.Score())
	}
	if attempt.Verdict() != "Perfect Score! Well done!" {
		t.Fatalf("unexpected verdict %q", attempt.Verdict())
	}
}

func TestScoreAnswers(t *testing.T) {
	quiz := threeQuestionQuiz()

	cases := []struct {
		name    string
		answers []int
		want    int
	}{
		{"all correct", []int{1, 0, 2}, 3},
		{"one wrong", []int{1, 1, 2}, 2},
		{"one unanswered", []int{app.Unanswered, 0, 2}, 2},
		{"none correct", []int{0, 1, 0}, 0},
	}
	for _, tc := range cases {
		if got := app.ScoreAnswers(quiz, tc.answers); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestScoreAnswersToleratesCorruptCorrectIndex(t *testing.T) {
	quiz := domain.Quiz{
		ID: "quiz-corrupt",
		Questions: []domain.Question{
			{ID: "q1", Options: []string{"a", "b"}, CorrectAnswerIndex: 5},
			{ID: "q2", Options: []string{"a", "b"}, CorrectAnswerIndex: 1},
		},
	}
	// An out-of-range correct index never matches, even when the answer
	// happens to equal it.
	if got := app.ScoreAnswers(quiz, []int{5, 1}); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestCompletedAttemptRejectsTransitions(t *testing.T) {
	quiz := domain.Quiz{
		ID: "quiz-single",
		Questions: []domain.Question{
			{ID: "q1", Options: []string{"a", "b"}, CorrectAnswerIndex: 0},
		},
	}
	attempt, _ := app.NewAttempt(quiz)
	_ = attempt.SelectOption(0)
	if err := attempt.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}

	if err := attempt.SelectOption(1); !errors.Is(err, domain.ErrNotInProgress) {
		t.Fatalf("expected ErrNotInProgress on select, got %v", err)
	}
	if err := attempt.Advance(); !errors.Is(err, domain.ErrNotInProgress) {
		t.Fatalf("expected ErrNotInProgress on advance, got %v", err)
	}
	if err := attempt.Retreat(); !errors.Is(err, domain.ErrNotInProgress) {
		t.Fatalf("expected ErrNotInProgress on retreat, got %v", err)
	}
}

func TestStartOverResets(t *testing.T) {
	attempt, _ := app.NewAttempt(threeQuestionQuiz())
	_ = attempt.SelectOption(1)
	_ = attempt.Advance()

	attempt.StartOver()

	if attempt.Index() != 0 || attempt.Completed() || attempt.Score() != 0 {
		t.Fatalf("start over must reset state")
	}
	for i, answer := range attempt.Answers() {
		if answer != app.Unanswered {
			t.Fatalf("expected answers[%d] cleared, got %d", i, answer)
		}
	}
}
