package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studydeck/internal/library"
	"studydeck/internal/services/llm"
)

func newQuestionCommand(ctx *commandContext) *cobra.Command {
	questionCmd := &cobra.Command{
		Use:   "question",
		Short: "Manage a material's quiz questions",
	}

	questionCmd.AddCommand(newQuestionAddCommand(ctx))
	questionCmd.AddCommand(newQuestionEditCommand(ctx))
	questionCmd.AddCommand(newQuestionDeleteCommand(ctx))

	return questionCmd
}

func newQuestionAddCommand(ctx *commandContext) *cobra.Command {
	var questionText string
	var answerText string
	var sourceNote string
	var generate bool

	cmd := &cobra.Command{
		Use:   "add <material>",
		Short: "Add a question, written by hand or generated from the summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if generate && (questionText != "" || answerText != "") {
				return fmt.Errorf("--generate cannot be combined with --question or --answer")
			}
			if !generate && strings.TrimSpace(questionText) == "" {
				return fmt.Errorf("provide --question and --answer, or use --generate")
			}

			return ctx.withRepository(cmd.Context(), func(repo *library.Repository) error {
				material, err := resolveMaterial(repo.Materials(), args[0])
				if err != nil {
					return err
				}

				question, answer, source := questionText, answerText, sourceNote
				if generate {
					cfg, err := ctx.ensureConfig()
					if err != nil {
						return err
					}
					llmCfg := cfg.GetLLM()
					client := llm.NewClient(llm.Config{
						APIKey:         llmCfg.APIKey,
						BaseURL:        llmCfg.BaseURL,
						Model:          llmCfg.Model,
						TimeoutSeconds: llmCfg.TimeoutSeconds,
					})
					qa, err := client.GenerateQuestion(cmd.Context(), material.Summary)
					if err != nil {
						return err
					}
					question, answer = qa.Question, qa.Answer
					if source == "" {
						source = "generated from summary"
					}
				}

				added, err := repo.AddQuestion(cmd.Context(), material.ID, question, answer, source)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Added question %s to %q.\n", shortID(added.ID), material.DisplayName)
				if generate {
					fmt.Fprintf(out, "Q: %s\nA: %s\n", added.Question, added.Answer)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&questionText, "question", "", "Question text")
	cmd.Flags().StringVar(&answerText, "answer", "", "Answer text")
	cmd.Flags().StringVar(&sourceNote, "source", "", "Note on where the question was drawn from")
	cmd.Flags().BoolVar(&generate, "generate", false, "Generate the question from the material summary")
	return cmd
}

func newQuestionEditCommand(ctx *commandContext) *cobra.Command {
	var questionText string
	var answerText string
	var sourceNote string

	cmd := &cobra.Command{
		Use:   "edit <material> <question-id>",
		Short: "Edit a question's text, answer, or source note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if questionText == "" && answerText == "" && sourceNote == "" {
				return fmt.Errorf("nothing to change: pass --question, --answer, or --source")
			}

			return ctx.withRepository(cmd.Context(), func(repo *library.Repository) error {
				material, err := resolveMaterial(repo.Materials(), args[0])
				if err != nil {
					return err
				}
				existing, ok := findQuestion(material, args[1])
				if !ok {
					return fmt.Errorf("no question matches %q in %q", args[1], material.DisplayName)
				}

				updated := existing
				if questionText != "" {
					updated.Question = questionText
				}
				if answerText != "" {
					updated.Answer = answerText
				}
				if sourceNote != "" {
					updated.SourceQuestions = sourceNote
				}

				repo.EditQuestion(cmd.Context(), material.ID, updated)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated question %s.\n", shortID(updated.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&questionText, "question", "", "Replacement question text")
	cmd.Flags().StringVar(&answerText, "answer", "", "Replacement answer text")
	cmd.Flags().StringVar(&sourceNote, "source", "", "Replacement source note")
	return cmd
}

func newQuestionDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <material> <question-id>",
		Short: "Delete a question from a material",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd.Context(), func(repo *library.Repository) error {
				material, err := resolveMaterial(repo.Materials(), args[0])
				if err != nil {
					return err
				}
				question, ok := findQuestion(material, args[1])
				if !ok {
					return fmt.Errorf("no question matches %q in %q", args[1], material.DisplayName)
				}
				repo.DeleteQuestion(cmd.Context(), material.ID, question.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted question %s.\n", shortID(question.ID))
				return nil
			})
		},
	}
}

// findQuestion matches a question by exact id or unique id prefix.
func findQuestion(material library.Material, ref string) (library.Question, bool) {
	ref = strings.TrimSpace(ref)
	var matches []library.Question
	for _, q := range material.Quiz {
		if q.ID == ref {
			return q, true
		}
		if strings.HasPrefix(q.ID, ref) {
			matches = append(matches, q)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	return library.Question{}, false
}
