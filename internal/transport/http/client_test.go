package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quizdeck-client/internal/domain"
)

func TestLoginUnwrapsEnvelope(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "alice@example.com" || body["password"] != "secret" {
			t.Fatalf("unexpected credentials %v", body)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"user":  domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"},
				"token": "tok-123",
			},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	user, token, err := client.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" || token != "tok-123" {
		t.Fatalf("unexpected result user=%+v token=%q", user, token)
	}
}

func TestListQuizzesAcceptsBarePayload(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/quizzes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []domain.Quiz{
			{ID: uuid.NewString(), Title: "Basics"},
			{ID: uuid.NewString(), Title: "Advanced"},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	quizzes, err := client.ListQuizzes(context.Background())
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(quizzes) != 2 || quizzes[0].Title != "Basics" {
		t.Fatalf("unexpected quizzes %+v", quizzes)
	}
}

func TestListQuizzesAcceptsWrappedPayload(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/quizzes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []domain.Quiz{{ID: "quiz-1", Title: "Basics"}},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	quizzes, err := client.ListQuizzes(context.Background())
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].ID != "quiz-1" {
		t.Fatalf("unexpected quizzes %+v", quizzes)
	}
}

func TestErrorResponseCarriesBackendMessage(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]any{
			"success": false,
			"message": "Email already in use",
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	_, _, err := client.Signup(context.Background(), "alice", "alice@example.com", "secret", false)

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "Email already in use" {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}
}

func TestErrorResponseFallsBackToGenericMessage(t *testing.T) {
	router := chi.NewRouter()
	router.Delete("/questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	err := client.DeleteQuestion(context.Background(), "question-1")

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Failed to delete question" {
		t.Fatalf("expected fallback message, got %q", apiErr.Message)
	}
}

func TestAuthorizationHeaderSentWhenTokenPresent(t *testing.T) {
	var gotAuth string
	router := chi.NewRouter()
	router.Get("/questions", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []domain.Question{})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(server.URL, time.Second, func() string { return "tok-123" })
	if _, err := client.ListQuestions(context.Background()); err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
}

func TestCreateQuestionTargetsQuizPath(t *testing.T) {
	questionID := uuid.NewString()
	router := chi.NewRouter()
	router.Post("/quizzes/{quizID}/question", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "quizID") != "quiz-1" {
			t.Fatalf("unexpected quiz id %q", chi.URLParam(r, "quizID"))
		}
		var in domain.QuestionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"success": true,
			"data": domain.Question{
				ID:                 questionID,
				Text:               in.Text,
				Options:            in.Options,
				CorrectAnswerIndex: in.CorrectAnswerIndex,
				Keywords:           in.Keywords,
			},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	created, err := client.CreateQuestion(context.Background(), "quiz-1", domain.QuestionInput{
		Text:               "What is 2 + 2?",
		Options:            []string{"3", "4", "5", "6"},
		CorrectAnswerIndex: 1,
		Keywords:           []string{"math"},
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if created.ID != questionID || created.CorrectAnswerIndex != 1 {
		t.Fatalf("unexpected created question %+v", created)
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}
