package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studydeck/internal/app"
	"studydeck/internal/library"
	"studydeck/internal/quiz"
)

func newQuizCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz <material>",
		Short: "Run an interactive quiz session over a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withController(cmd.Context(), func(ctrl *app.Controller, repo *library.Repository) error {
				material, err := resolveMaterial(repo.Materials(), args[0])
				if err != nil {
					return err
				}
				if err := ctrl.OpenDashboard(); err != nil {
					return err
				}
				if err := ctrl.StartQuiz(material.ID); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				scanner := bufio.NewScanner(cmd.InOrStdin())

				fmt.Fprintf(out, "Quizzing on %q. Answers are self-graded; quitting records nothing.\n", material.DisplayName)

				for ctrl.Mode() == app.ModeQuiz {
					index, total, err := ctrl.Progress()
					if err != nil {
						return err
					}
					question, _, err := ctrl.CurrentQuestion()
					if err != nil {
						return err
					}

					header := fmt.Sprintf("Question %d/%d", index+1, total)
					if colorize {
						header = ansiBold + ansiBlue + header + ansiReset
					}
					fmt.Fprintf(out, "\n%s\n%s\n", header, question.Question)

					fmt.Fprint(out, "[Enter] reveal answer, (s)kip, (q)uit: ")
					input, ok := readLine(scanner)
					if !ok {
						ctrl.Abandon()
						return nil
					}
					switch input {
					case "q":
						ctrl.Abandon()
						fmt.Fprintln(out, "Quiz abandoned; nothing was recorded.")
						return nil
					case "s":
						if err := ctrl.NextQuestion(cmd.Context()); err != nil {
							return err
						}
						continue
					}

					if err := ctrl.RevealAnswer(); err != nil {
						return err
					}
					fmt.Fprintf(out, "\nAnswer: %s\n", question.Answer)

					graded := false
					for !graded {
						fmt.Fprint(out, "Did you get it right? (y)es, (n)o, (s)kip, (q)uit: ")
						verdict, ok := readLine(scanner)
						if !ok {
							ctrl.Abandon()
							return nil
						}
						switch verdict {
						case "y":
							if err := ctrl.MarkAnswer(library.StatusCorrect); err != nil {
								return err
							}
							graded = true
						case "n":
							if err := ctrl.MarkAnswer(library.StatusIncorrect); err != nil {
								return err
							}
							graded = true
						case "s":
							graded = true
						case "q":
							ctrl.Abandon()
							fmt.Fprintln(out, "Quiz abandoned; nothing was recorded.")
							return nil
						}
					}

					if err := ctrl.NextQuestion(cmd.Context()); err != nil {
						return err
					}
				}

				attempt, err := ctrl.LastAttempt()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nQuiz complete. Score: %s\n",
					formatScore(attempt.Answers, quiz.ScorePercent(attempt.Answers)))
				return ctrl.FinishReview()
			})
		},
	}
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(scanner.Text())), true
}
