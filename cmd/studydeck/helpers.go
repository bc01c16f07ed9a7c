package main

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"studydeck/internal/library"
	"studydeck/internal/quiz"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiBlue  = "\x1b[34m"
)

// resolveMaterial turns a user-supplied reference into a material: an exact
// id, a unique id prefix, or an exact display name (case-insensitive).
func resolveMaterial(materials []library.Material, ref string) (library.Material, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return library.Material{}, fmt.Errorf("material reference is required")
	}

	var prefixMatches []library.Material
	for _, m := range materials {
		if m.ID == ref {
			return m, nil
		}
		if strings.HasPrefix(m.ID, ref) {
			prefixMatches = append(prefixMatches, m)
		}
	}
	if len(prefixMatches) == 1 {
		return prefixMatches[0], nil
	}
	if len(prefixMatches) > 1 {
		return library.Material{}, fmt.Errorf("material reference %q is ambiguous (%d matches)", ref, len(prefixMatches))
	}

	var nameMatches []library.Material
	for _, m := range materials {
		if strings.EqualFold(m.DisplayName, ref) {
			nameMatches = append(nameMatches, m)
		}
	}
	if len(nameMatches) == 1 {
		return nameMatches[0], nil
	}
	if len(nameMatches) > 1 {
		return library.Material{}, fmt.Errorf("display name %q is ambiguous (%d matches)", ref, len(nameMatches))
	}

	return library.Material{}, fmt.Errorf("no material matches %q (try 'studydeck list')", ref)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if limit <= 3 || len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatScore(answers []library.AnswerStatus, percent int) string {
	return fmt.Sprintf("%d/%d (%d%%)", quiz.CorrectCount(answers), len(answers), percent)
}
