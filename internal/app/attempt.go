package app

import "quizdeck-client/internal/domain"

// Unanswered marks a question with no selected option.
const Unanswered = -1

// Attempt drives a single run through a quiz's questions: one question at a
// time, previous answers revisitable, score computed on completion. It is
// owned by the view event loop and never persisted.
type Attempt struct {
	quiz      domain.Quiz
	index     int
	answers   []int
	completed bool
	score     int
}

// NewAttempt starts an attempt at the first question. A quiz without
// questions is a valid data state but cannot be taken, so it is refused
// up front rather than crashing on first render.
func NewAttempt(quiz domain.Quiz) (*Attempt, error) {
	if len(quiz.Questions) == 0 {
		return nil, domain.ErrNoQuestions
	}
	a := &Attempt{quiz: quiz}
	a.reset()
	return a, nil
}

func (a *Attempt) reset() {
	a.index = 0
	a.completed = false
	a.score = 0
	a.answers = make([]int, len(a.quiz.Questions))
	for i := range a.answers {
		a.answers[i] = Unanswered
	}
}

// StartOver discards all answers and returns to the first question.
func (a *Attempt) StartOver() {
	a.reset()
}

// Current returns the question under the pointer, bounds-checked so corrupt
// quiz data surfaces as an error instead of a panic.
func (a *Attempt) Current() (domain.Question, error) {
	if a.completed {
		return domain.Question{}, domain.ErrNotInProgress
	}
	if a.index < 0 || a.index >= len(a.quiz.Questions) {
		return domain.Question{}, domain.ErrQuizNotFound
	}
	return a.quiz.Questions[a.index], nil
}

// SelectOption records an answer for the current question without advancing.
// Re-selecting overwrites: the last choice wins.
func (a *Attempt) SelectOption(option int) error {
	question, err := a.Current()
	if err != nil {
		return err
	}
	if option < 0 || option >= len(question.Options) {
		return domain.ErrOptionOutOfRange
	}
	a.answers[a.index] = option
	return nil
}

// Advance moves to the next question, or completes the attempt and computes
// the score when the pointer is on the last one. An unanswered current
// question blocks it; the state is left untouched in that case.
func (a *Attempt) Advance() error {
	if a.completed {
		return domain.ErrNotInProgress
	}
	if a.answers[a.index] == Unanswered {
		return domain.ErrUnanswered
	}
	if a.index < len(a.quiz.Questions)-1 {
		a.index++
		return nil
	}
	a.score = ScoreAnswers(a.quiz, a.answers)
	a.completed = true
	return nil
}

// Retreat steps back one question. The answer already given to the question
// being left is kept.
func (a *Attempt) Retreat() error {
	if a.completed {
		return domain.ErrNotInProgress
	}
	if a.index == 0 {
		return domain.ErrAtFirstQuestion
	}
	a.index--
	return nil
}

// Index returns the 0-based current question pointer.
func (a *Attempt) Index() int { return a.index }

// Len returns the number of questions in the attempt.
func (a *Attempt) Len() int { return len(a.quiz.Questions) }

// Completed reports whether the attempt reached its terminal state.
func (a *Attempt) Completed() bool { return a.completed }

// Score returns the computed score; meaningful once Completed.
func (a *Attempt) Score() int { return a.score }

// Answers returns a copy of the per-question answer record.
func (a *Attempt) Answers() []int {
	out := make([]int, len(a.answers))
	copy(out, a.answers)
	return out
}

// Verdict words the result the way the score page does.
func (a *Attempt) Verdict() string {
	total := len(a.quiz.Questions)
	switch {
	case a.score == total:
		return "Perfect Score! Well done!"
	case a.score*2 > total:
		return "Good job!"
	default:
		return "Keep practicing!"
	}
}

// ScoreAnswers counts exact matches between answers and each question's
// correct option. Unanswered entries never match, and neither does a
// correctAnswerIndex outside the question's options: that is a data-integrity
// bug upstream and must not cause a crash or a free point here.
func ScoreAnswers(quiz domain.Quiz, answers []int) int {
	score := 0
	for i, question := range quiz.Questions {
		if i >= len(answers) {
			break
		}
		if question.CorrectAnswerIndex < 0 || question.CorrectAnswerIndex >= len(question.Options) {
			continue
		}
		if answers[i] == question.CorrectAnswerIndex {
			score++
		}
	}
	return score
}
