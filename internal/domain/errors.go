package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound indicates the active quiz (or one of its questions) is missing.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrNoQuestions is returned when an attempt is started on a quiz without questions.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrNotInProgress rejects transitions on a completed attempt.
	ErrNotInProgress = errors.New("attempt already completed")
	// ErrUnanswered blocks advancing past a question with no selected option.
	ErrUnanswered = errors.New("current question is unanswered")
	// ErrAtFirstQuestion rejects retreating from the first question.
	ErrAtFirstQuestion = errors.New("already at the first question")
	// ErrOptionOutOfRange rejects an option index outside the current question.
	ErrOptionOutOfRange = errors.New("option index out of range")

	// ErrKeyNotFound is returned by storage implementations for missing keys.
	ErrKeyNotFound = errors.New("storage key not found")

	// ErrBusy rejects a mutation while a previous one is still in flight.
	ErrBusy = errors.New("another request is in flight")
	// ErrTitleRequired rejects a quiz form without a title.
	ErrTitleRequired = errors.New("quiz title is required")
	// ErrQuizRequired rejects a new question that names no quiz.
	ErrQuizRequired = errors.New("a quiz must be selected for the new question")
	// ErrTextRequired rejects a question form without text.
	ErrTextRequired = errors.New("question text is required")
	// ErrOptionsRequired rejects a question form with a blank answer option.
	ErrOptionsRequired = errors.New("all four answer options are required")
	// ErrCorrectIndexRange rejects a correct-answer selector outside the options.
	ErrCorrectIndexRange = errors.New("correct answer index must be between 0 and 3")

	// ErrAdminOnly gates the admin panel to administrator accounts.
	ErrAdminOnly = errors.New("access denied: admins only")
)

// APIError is a backend rejection carrying its human-readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}
