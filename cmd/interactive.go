package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/render"
	"github.com/spigell/hr-scout/internal/talent"
)

const (
	PromptExit                = "Exit"
	PromptAppendToExcludeFile = "Append all candidates to exclude file"
	PromptCandidatesToFile    = "Dump candidates to file"
	excludeReason             = "excluded during interactive review"
)

var errExit = errors.New("exit requested")

// review lets the user browse candidates until they choose to exit.
func review(out io.Writer, logger *zap.Logger, excludeFile string, candidates []talent.Candidate) error {
	candidates = talent.Copy(candidates)

	for {
		items := candidateLabels(candidates)
		if len(candidates) != 0 {
			items = append(items, PromptCandidatesToFile)
			if excludeFile != "" {
				items = append(items, PromptAppendToExcludeFile)
			}
		}
		items = append(items, PromptExit)

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: items,
			Size:  10,
		}

		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return errExit
			}
			return err
		}

		switch selected {
		case PromptExit:
			return errExit
		case PromptCandidatesToFile:
			filename, err := talent.DumpToTmpFile(candidates)
			if err != nil {
				return fmt.Errorf("dump candidates to file: %w", err)
			}
			logger.Info("dumping candidates to file", zap.String("filename", filename))
		case PromptAppendToExcludeFile:
			if err := appendToExcludeFile(excludeFile, candidates); err != nil {
				return err
			}
			logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", len(candidates)))
			candidates = []talent.Candidate{}
		default:
			if idx < 0 || idx >= len(candidates) {
				return fmt.Errorf("invalid selection: %s", selected)
			}
			fmt.Fprintln(out)
			if err := render.Candidate(out, candidates[idx]); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
	}
}

func candidateLabels(candidates []talent.Candidate) []string {
	labels := make([]string, 0, len(candidates)+3)
	for _, c := range candidates {
		parts := []string{fmt.Sprintf("%3d", c.Score), c.Name}
		if c.Title != "" {
			parts = append(parts, c.Title)
		}
		if c.ProfileURL != "" {
			parts = append(parts, c.ProfileURL)
		}
		labels = append(labels, strings.Join(parts, " / "))
	}
	return labels
}

func appendToExcludeFile(path string, candidates []talent.Candidate) error {
	excluded, err := talent.GetExcludedProfilesFromFile(path)
	if err != nil {
		return fmt.Errorf("reading exclude file: %w", err)
	}

	excluded.Append(talent.ToExcluded(candidates, excludeReason))

	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("writing exclude file: %w", err)
	}
	return nil
}
