package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"quizdeck-client/internal/domain"
)

// Client talks to the quiz backend REST API. It implements app.Gateway.
type Client struct {
	base  string
	http  *http.Client
	token func() string
}

// NewClient builds a gateway client for the given base URL. token supplies
// the bearer token for authenticated calls and may return "" while signed
// out.
func NewClient(base string, timeout time.Duration, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: timeout},
		token: token,
	}
}

type authPayload struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload, "Login failed"); err != nil {
		return domain.User{}, "", err
	}
	return payload.User, payload.Token, nil
}

func (c *Client) Signup(ctx context.Context, username, email, password string, admin bool) (domain.User, string, error) {
	body := map[string]any{
		"username": username,
		"email":    email,
		"password": password,
		"admin":    admin,
	}
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &payload, "Signup failed"); err != nil {
		return domain.User{}, "", err
	}
	return payload.User, payload.Token, nil
}

func (c *Client) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	if err := c.do(ctx, http.MethodGet, "/quizzes", nil, &quizzes, "Failed to fetch quizzes"); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (c *Client) GetQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodGet, "/quizzes/"+url.PathEscape(id), nil, &quiz, "Failed to load quiz"); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (c *Client) CreateQuiz(ctx context.Context, in domain.QuizInput) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodPost, "/quizzes", in, &quiz, "Failed to create quiz"); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (c *Client) UpdateQuiz(ctx context.Context, id string, in domain.QuizInput) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodPut, "/quizzes/"+url.PathEscape(id), in, &quiz, "Failed to update quiz"); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (c *Client) DeleteQuiz(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/quizzes/"+url.PathEscape(id), nil, nil, "Failed to delete quiz")
}

func (c *Client) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	var questions []domain.Question
	if err := c.do(ctx, http.MethodGet, "/questions", nil, &questions, "Failed to fetch questions"); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *Client) CreateQuestion(ctx context.Context, quizID string, in domain.QuestionInput) (domain.Question, error) {
	var question domain.Question
	path := "/quizzes/" + url.PathEscape(quizID) + "/question"
	if err := c.do(ctx, http.MethodPost, path, in, &question, "Failed to save question"); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id string, in domain.QuestionInput) (domain.Question, error) {
	var question domain.Question
	if err := c.do(ctx, http.MethodPut, "/questions/"+url.PathEscape(id), in, &question, "Failed to save question"); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/questions/"+url.PathEscape(id), nil, nil, "Failed to delete question")
}

// envelope covers both response shapes the backend emits: a bare payload or
// {success, data, message}. decodePayload normalizes the two in one place so
// call sites never branch on shape.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodePayload(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && (env.Success != nil || len(env.Data) > 0) {
		if len(env.Data) == 0 {
			return nil
		}
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}

func errorMessage(raw []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return fallback
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("gateway call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &domain.APIError{Status: resp.StatusCode, Message: errorMessage(raw, fallback)}
	}
	return decodePayload(raw, out)
}
