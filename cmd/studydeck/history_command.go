package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"studydeck/internal/library"
	"studydeck/internal/quiz"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history <material>",
		Short: "Show a material's quiz attempt history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd.Context(), func(repo *library.Repository) error {
				material, err := resolveMaterial(repo.Materials(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(material.QuizAttempts) == 0 {
					fmt.Fprintf(out, "No attempts for %q yet. Start one with 'studydeck quiz %s'.\n",
						material.DisplayName, shortID(material.ID))
					return nil
				}

				rows := make([][]string, 0, len(material.QuizAttempts))
				for i, attempt := range material.QuizAttempts {
					unanswered := 0
					for _, status := range attempt.Answers {
						if status == library.StatusUnanswered {
							unanswered++
						}
					}
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						formatDate(attempt.Date),
						formatScore(attempt.Answers, quiz.ScorePercent(attempt.Answers)),
						strconv.Itoa(unanswered),
					})
				}

				fmt.Fprintf(out, "Attempts for %q:\n", material.DisplayName)
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Date", "Score", "Skipped"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}
