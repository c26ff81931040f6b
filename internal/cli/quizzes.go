package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"quizdeck-client/internal/app"
)

// NewQuizzesCmd lists the quizzes available to take.
func NewQuizzesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quizzes",
		Short: "List available quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnv(ctx)
			if err != nil {
				return err
			}

			catalog := app.NewCatalogStore()
			defer catalog.Close()

			catalog.BeginLoad()
			quizzes, err := env.gateway.ListQuizzes(ctx)
			if err != nil {
				message := app.ErrorMessage(err, "Failed to fetch quizzes")
				catalog.FailLoad(message)
				return errors.New(message)
			}
			catalog.SetQuizzes(quizzes)

			state := catalog.Snapshot()
			if len(state.Quizzes) == 0 {
				cmd.Println("No quizzes available yet.")
				return nil
			}
			for _, quiz := range state.Quizzes {
				cmd.Printf("%s  %s (%d questions)\n", quiz.ID, quiz.Title, len(quiz.Questions))
				if quiz.Description != "" {
					cmd.Printf("    %s\n", quiz.Description)
				}
			}
			return nil
		},
	}
}
