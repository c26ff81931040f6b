package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"quizdeck-client/internal/app"
	"quizdeck-client/internal/domain"
)

// NewAdminCmd groups the quiz and question management commands.
func NewAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage quizzes and questions (admins only)",
	}
	cmd.AddCommand(newAdminQuizCmd())
	cmd.AddCommand(newAdminQuestionsCmd())
	cmd.AddCommand(newAdminQuestionCmd())
	return cmd
}

// newAdminPanel wires an AdminPanel for a command run, refusing non-admin
// sessions up front.
func newAdminPanel(cmd *cobra.Command) (*app.AdminPanel, error) {
	env, err := newEnv(cmd.Context())
	if err != nil {
		return nil, err
	}

	state := env.session.Snapshot()
	if !state.IsAuthenticated || state.User == nil || !state.User.Admin {
		return nil, domain.ErrAdminOnly
	}

	return app.NewAdminPanel(env.gateway, confirmPrompt(cmd), cmdNotifier{cmd: cmd}), nil
}

func newAdminQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Create, update, and delete quizzes",
	}

	var title, description string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a new quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := newAdminPanel(cmd)
			if err != nil {
				return err
			}
			panel.SetQuizForm(app.QuizForm{Title: title, Description: description})
			return panel.SubmitQuiz(cmd.Context())
		},
	}
	create.Flags().StringVar(&title, "title", "", "quiz title (required)")
	create.Flags().StringVar(&description, "description", "", "quiz description")

	update := &cobra.Command{
		Use:   "update <quiz-id>",
		Short: "Update an existing quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := newAdminPanel(cmd)
			if err != nil {
				return err
			}
			panel.SetQuizForm(app.QuizForm{Title: title, Description: description, EditingID: args[0]})
			return panel.SubmitQuiz(cmd.Context())
		},
	}
	update.Flags().StringVar(&title, "title", "", "quiz title (required)")
	update.Flags().StringVar(&description, "description", "", "quiz description")

	del := &cobra.Command{
		Use:   "delete <quiz-id>",
		Short: "Delete a quiz and all of its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := newAdminPanel(cmd)
			if err != nil {
				return err
			}
			return panel.DeleteQuiz(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(create, update, del)
	return cmd
}

func newAdminQuestionsCmd() *cobra.Command {
	var filterQuiz string
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List questions, optionally scoped to one quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := newAdminPanel(cmd)
			if err != nil {
				return err
			}

			panel.SetFilter(filterQuiz)
			if err := panel.RefreshQuestions(cmd.Context()); err != nil {
				return err
			}

			questions := panel.Questions()
			if len(questions) == 0 {
				cmd.Println("No questions found.")
				return nil
			}
			for _, q := range questions {
				correct := "?"
				if q.CorrectAnswerIndex >= 0 && q.CorrectAnswerIndex < len(q.Options) {
					correct = string(rune('A' + q.CorrectAnswerIndex))
				}
				cmd.Printf("%s  %s\n", q.ID, q.Text)
				cmd.Printf("    %s  [correct: %s]\n", strings.Join(q.Options, " | "), correct)
				if len(q.Keywords) > 0 {
					cmd.Printf("    keywords: %s\n", strings.Join(q.Keywords, ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filterQuiz, "quiz", "", "only questions belonging to this quiz")
	return cmd
}

func newAdminQuestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Create, update, and delete questions",
	}

	var (
		quizID   string
		text     string
		options  []string
		correct  string
		keywords string
	)

	formFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&text, "text", "", "question text (required)")
		c.Flags().StringSliceVar(&options, "option", nil, "answer option, repeat four times")
		c.Flags().StringVar(&correct, "correct", "0", "index of the correct option (0-3)")
		c.Flags().StringVar(&keywords, "keywords", "", "comma-separated keyword tags")
	}

	buildForm := func(editingID string) app.QuestionForm {
		form := app.QuestionForm{
			Text:               text,
			CorrectAnswerIndex: correct,
			Keywords:           keywords,
			QuizID:             quizID,
			EditingID:          editingID,
		}
		copy(form.Options[:], options)
		return form
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a question to a quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := newAdminPanel(cmd)
			if err != nil {
				return err
			}
			panel.SetQuestionForm(buildForm(""))
			return panel.SubmitQuestion(cmd.Context())
		},
	}
	formFlags(add)
	add.Flags().StringVar(&quizID, "quiz", "", "quiz the question belongs to (required)")

	update := &cobra.Command{
		Use:   "update <question-id>",
		Short: "Update an existing question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := newAdminPanel(cmd)
			if err != nil {
				return err
			}
			panel.SetQuestionForm(buildForm(args[0]))
			return panel.SubmitQuestion(cmd.Context())
		},
	}
	formFlags(update)

	del := &cobra.Command{
		Use:   "delete <question-id>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := newAdminPanel(cmd)
			if err != nil {
				return err
			}
			return panel.DeleteQuestion(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(add, update, del)
	return cmd
}

// cmdNotifier renders transient admin notifications on the command's output,
// standing in for the web client's toast stack.
type cmdNotifier struct {
	cmd *cobra.Command
}

func (n cmdNotifier) Success(message string) { n.cmd.Println(message) }
func (n cmdNotifier) Info(message string)    { n.cmd.Println(message) }
func (n cmdNotifier) Error(message string)   { n.cmd.PrintErrln(message) }

// confirmPrompt asks y/N on the terminal; --yes short-circuits it.
func confirmPrompt(cmd *cobra.Command) app.Confirmer {
	return func(prompt string) bool {
		if assumeYes {
			return true
		}
		cmd.Printf("%s [y/N] ", prompt)
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
