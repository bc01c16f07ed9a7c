package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"studydeck/internal/app"
	"studydeck/internal/config"
	"studydeck/internal/library"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "add <pdf>",
		Short: "Ingest a PDF and generate its summary and quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory, expected a PDF file", args[0])
			}

			return ctx.withController(cmd.Context(), func(ctrl *app.Controller, repo *library.Repository) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Extracting and generating study set for %s ...\n", args[0])

				if err := ctrl.BeginUpload(cmd.Context(), path); err != nil {
					return err
				}
				ctrl.Wait()

				if ctrl.Mode() != app.ModeDashboard {
					if msg := ctrl.LastError(); msg != "" {
						return errors.New(msg)
					}
					return errors.New("upload failed")
				}

				material, ok := ctrl.ActiveMaterial()
				if !ok {
					return errors.New("upload completed but material is missing")
				}
				if name := strings.TrimSpace(displayName); name != "" {
					repo.RenameMaterial(cmd.Context(), material.ID, name)
					material.DisplayName = name
				}

				fmt.Fprintf(out, "Created %q (%s) with %d questions.\n",
					material.DisplayName, shortID(material.ID), len(material.Quiz))
				fmt.Fprintf(out, "\n%s\n", material.Summary)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name for the material (defaults to a title derived from the file name)")
	return cmd
}
