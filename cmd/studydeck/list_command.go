package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"studydeck/internal/library"
	"studydeck/internal/quiz"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List study materials, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd.Context(), func(repo *library.Repository) error {
				materials := repo.Materials()
				out := cmd.OutOrStdout()
				if len(materials) == 0 {
					fmt.Fprintln(out, "No materials yet. Add one with 'studydeck add <pdf>'.")
					return nil
				}

				rows := make([][]string, 0, len(materials))
				for _, m := range materials {
					lastScore := "-"
					if n := len(m.QuizAttempts); n > 0 {
						answers := m.QuizAttempts[n-1].Answers
						lastScore = formatScore(answers, quiz.ScorePercent(answers))
					}
					rows = append(rows, []string{
						shortID(m.ID),
						truncate(m.DisplayName, 40),
						strconv.Itoa(len(m.Quiz)),
						strconv.Itoa(len(m.QuizAttempts)),
						lastScore,
						formatDate(m.CreatedAt),
					})
				}

				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Questions", "Attempts", "Last Score", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}
