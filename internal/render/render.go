package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/spigell/hr-scout/internal/history"
	"github.com/spigell/hr-scout/internal/talent"
	"github.com/spigell/hr-scout/internal/utils"
)

// Format selects how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

const summaryWidth = 60

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	scoreHigh = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("42"))
	scoreMid  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("214"))
	scoreLow  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("203"))
)

// ParseFormat validates a format name. An empty name selects the table format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table, json or yaml)", s)
	}
}

// Candidates writes the candidate list in the requested format.
func Candidates(w io.Writer, format Format, list []talent.Candidate) error {
	list = talent.Copy(list)

	switch format {
	case FormatJSON:
		return writeJSON(w, list)
	case FormatYAML:
		return writeYAML(w, list)
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No candidates found.")
		return err
	}

	rows := make([][]string, 0, len(list))
	for i, c := range list {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(c.Score),
			c.Name,
			joinNonEmpty(" @ ", c.Title, c.Company),
			c.Location,
			c.ProfileURL,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("#", "SCORE", "NAME", "POSITION", "LOCATION", "PROFILE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 && row >= 0 && row < len(list) {
				return scoreStyle(list[row].Score)
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Candidate writes every field of a single candidate as labelled lines.
func Candidate(w io.Writer, c talent.Candidate) error {
	lines := []struct {
		label string
		value string
	}{
		{"Name", c.Name},
		{"Title", c.Title},
		{"Company", c.Company},
		{"Location", c.Location},
		{"Experience", c.Experience},
		{"Skills", strings.Join(c.Skills, ", ")},
		{"Score", strconv.Itoa(c.Score)},
		{"Summary", c.Summary},
		{"Profile", c.ProfileURL},
		{"Source", c.Source},
	}

	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line.value) == "" {
			continue
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-11s", line.label+":")))
		b.WriteString(" ")
		b.WriteString(line.value)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Error writes a search failure message.
func Error(w io.Writer, message string) error {
	_, err := fmt.Fprintln(w, errorStyle.Render(message))
	return err
}

// Runs writes recorded search runs. Table output lists one line per run without candidates.
func Runs(w io.Writer, format Format, runs []history.Run) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, runs)
	case FormatYAML:
		return writeYAML(w, runs)
	}

	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No recorded searches.")
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := "ok"
		switch {
		case run.Error != "":
			status = "error"
		case run.Demo:
			status = "demo"
		}
		rows = append(rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			string(run.Locale),
			string(run.Scope),
			strconv.Itoa(len(run.Candidates)),
			status,
			utils.TruncateForLog(strings.Join(strings.Fields(run.Brief), " "), summaryWidth),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "TIME", "LOCALE", "SCOPE", "FOUND", "STATUS", "BRIEF").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Run writes a single recorded search with its candidates.
func Run(w io.Writer, format Format, run history.Run) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, run)
	case FormatYAML:
		return writeYAML(w, run)
	}

	header := []struct {
		label string
		value string
	}{
		{"ID", run.ID},
		{"Time", run.CreatedAt.Local().Format(time.DateTime)},
		{"Locale", string(run.Locale)},
		{"Scope", string(run.Scope)},
		{"Query", run.Query},
		{"Demo", strconv.FormatBool(run.Demo)},
	}
	for _, line := range header {
		if _, err := fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-7s", line.label+":")), line.value); err != nil {
			return err
		}
	}
	if run.Error != "" {
		if err := Error(w, run.Error); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n%s\n\n", run.Brief); err != nil {
		return err
	}

	return Candidates(w, FormatTable, run.Candidates)
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return scoreHigh
	case score >= 50:
		return scoreMid
	default:
		return scoreLow
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
