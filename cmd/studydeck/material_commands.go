package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studydeck/internal/library"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <material> <new name>",
		Short: "Rename a material's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newName := strings.TrimSpace(args[1])
			if newName == "" {
				return fmt.Errorf("new name must not be empty")
			}
			return ctx.withRepository(cmd.Context(), func(repo *library.Repository) error {
				material, err := resolveMaterial(repo.Materials(), args[0])
				if err != nil {
					return err
				}
				repo.RenameMaterial(cmd.Context(), material.ID, newName)
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q.\n", material.DisplayName, newName)
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <material>",
		Short: "Delete a material and its quiz history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd.Context(), func(repo *library.Repository) error {
				material, err := resolveMaterial(repo.Materials(), args[0])
				if err != nil {
					return err
				}
				if !force {
					return fmt.Errorf("deleting %q removes %d questions and %d attempts; re-run with --force",
						material.DisplayName, len(material.Quiz), len(material.QuizAttempts))
				}
				repo.DeleteMaterial(cmd.Context(), material.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q.\n", material.DisplayName)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return cmd
}
