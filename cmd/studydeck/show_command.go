package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studydeck/internal/library"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "show <material>",
		Short: "Show a material's summary and questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd.Context(), func(repo *library.Repository) error {
				material, err := resolveMaterial(repo.Materials(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", material.DisplayName, material.ID)
				fmt.Fprintf(out, "File: %s  Created: %s  Questions: %d  Attempts: %d\n\n",
					material.FileName, formatDate(material.CreatedAt), len(material.Quiz), len(material.QuizAttempts))
				fmt.Fprintf(out, "%s\n\n", material.Summary)

				if len(material.Quiz) == 0 {
					fmt.Fprintln(out, "No questions. Add one with 'studydeck question add'.")
					return nil
				}

				limit := 60
				if full {
					limit = 0
				}
				rows := make([][]string, 0, len(material.Quiz))
				for _, q := range material.Quiz {
					question, answer, source := q.Question, q.Answer, q.SourceQuestions
					if limit > 0 {
						question = truncate(question, limit)
						answer = truncate(answer, limit)
						source = truncate(source, 30)
					}
					rows = append(rows, []string{shortID(q.ID), question, answer, source})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Question", "Answer", "Source"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Show untruncated question and answer text")
	return cmd
}
