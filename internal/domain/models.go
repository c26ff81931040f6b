package domain

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// User is the authenticated identity issued by the backend on login/signup.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
}

// Question models a four-option multiple-choice question. CorrectAnswerIndex
// is expected to index Options; out-of-range values are tolerated and simply
// never match during scoring.
type Question struct {
	ID                 string   `json:"_id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Keywords           []string `json:"keywords"`
}

// Quiz is an ordered collection of questions with display metadata.
type Quiz struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// QuizInput carries the mutable quiz fields sent on create/update.
type QuizInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuestionInput carries the mutable question fields sent on create/update.
// The owning quiz is addressed separately on create and cannot change after.
type QuestionInput struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Keywords           []string `json:"keywords"`
}
