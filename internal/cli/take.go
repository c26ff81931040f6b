package cli

import (
	"bufio"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quizdeck-client/internal/app"
	"quizdeck-client/internal/config"
	"quizdeck-client/internal/domain"
	"quizdeck-client/internal/infra/memory"
)

// NewTakeCmd runs a quiz attempt question by question.
func NewTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <quiz-id>",
		Short: "Take a quiz interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			return runTake(cmd, env, args[0])
		},
	}
}

func runTake(cmd *cobra.Command, env *env, quizID string) error {
	ctx := cmd.Context()

	catalog := app.NewCatalogStore()
	defer catalog.Close()
	// Explicit teardown: stale quiz data must not survive leaving the view.
	defer catalog.SetCurrentQuiz(nil)

	cache := memory.NewQuizCache(env.gateway, config.Duration(env.cfg.Quiz.CacheTTL, 10*time.Minute))

	catalog.BeginLoad()
	quiz, err := cache.GetQuiz(ctx, quizID)
	if err != nil {
		message := app.ErrorMessage(err, "Failed to load quiz")
		catalog.FailLoad(message)
		return errors.New(message)
	}
	catalog.SetCurrentQuiz(&quiz)

	attempt, err := app.NewAttempt(quiz)
	if errors.Is(err, domain.ErrNoQuestions) {
		cmd.Println("This quiz has no questions yet.")
		return nil
	}
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for !attempt.Completed() {
		if catalog.Snapshot().CurrentQuiz == nil {
			return domain.ErrQuizNotFound
		}
		question, err := attempt.Current()
		if err != nil {
			return err
		}
		printQuestion(cmd, quiz, attempt, question)

		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}

		switch input := strings.ToLower(strings.TrimSpace(line)); input {
		case "n", "next":
			switch err := attempt.Advance(); {
			case errors.Is(err, domain.ErrUnanswered):
				cmd.Println("Answer this question before moving on.")
			case err != nil:
				return err
			}
		case "p", "prev":
			switch err := attempt.Retreat(); {
			case errors.Is(err, domain.ErrAtFirstQuestion):
				cmd.Println("Already at the first question.")
			case err != nil:
				return err
			}
		case "q", "quit":
			cmd.Println("Attempt discarded.")
			return nil
		default:
			option, ok := parseOption(input, len(question.Options))
			if !ok {
				cmd.Println("Pick an option (a-d), n for next, p for previous, q to quit.")
				continue
			}
			if err := attempt.SelectOption(option); err != nil {
				return err
			}
		}
	}

	cmd.Printf("\nQuiz Finished!\nYour Score: %d / %d\n%s\n", attempt.Score(), attempt.Len(), attempt.Verdict())
	return nil
}

func printQuestion(cmd *cobra.Command, quiz domain.Quiz, attempt *app.Attempt, question domain.Question) {
	cmd.Printf("\n[%s] Question %d of %d\n%s\n", quiz.Title, attempt.Index()+1, attempt.Len(), question.Text)
	selected := attempt.Answers()[attempt.Index()]
	for i, option := range question.Options {
		marker := " "
		if i == selected {
			marker = "*"
		}
		cmd.Printf(" %s %c. %s\n", marker, 'A'+i, option)
	}
	cmd.Print("> ")
}

// parseOption accepts a letter (a-d) or a 1-based number.
func parseOption(input string, count int) (int, bool) {
	if len(input) == 1 && input[0] >= 'a' && int(input[0]-'a') < count {
		return int(input[0] - 'a'), true
	}
	if index, err := strconv.Atoi(input); err == nil && index >= 1 && index <= count {
		return index - 1, true
	}
	return 0, false
}
