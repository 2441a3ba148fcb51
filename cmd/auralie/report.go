package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nvandessel/auralie/internal/models"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult writes a human-readable report of res. With transcript set
// every recorded turn is included.
func printResult(w io.Writer, res *models.SimulationResult, transcript bool) {
	p := res.Participants
	fmt.Fprintf(w, "Simulation %s\n", res.ID)
	fmt.Fprintf(w, "  %s (%s) & %s (%s)\n", p.Person1, p.Person1ID, p.Person2, p.Person2ID)
	fmt.Fprintf(w, "  Status: %s, %d day(s) completed\n", res.Status, res.CompletedDays)
	if res.Error != "" {
		fmt.Fprintf(w, "  Error:  %s\n", res.Error)
	}

	if transcript {
		for _, d := range res.Days {
			fmt.Fprintf(w, "\nDay %d\n", d.Day)
			for _, s := range d.TextingSessions {
				fmt.Fprintf(w, "  [%s texting]\n", s.Time)
				printTurns(w, s.Exchanges)
			}
			for _, a := range d.Activities {
				fmt.Fprintf(w, "  [%s - %s]\n", a.Activity.Name, a.Activity.Description)
				printTurns(w, a.Interactions)
			}
		}
	}

	if res.Compatibility != nil {
		fmt.Fprintf(w, "\nVerdict: %s (score %.1f)\n", strings.ToUpper(res.Compatibility.Rating), res.Compatibility.Score)
	}
	for _, id := range []string{p.Person1ID, p.Person2ID} {
		fa, ok := res.FinalAssessment[id]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s (final affinity %d/100):\n  %s\n", fa.Name, fa.FinalAffinity, fa.Statement)
	}
	if len(res.DateSuggestions) > 0 {
		fmt.Fprintln(w, "\nDate suggestions:")
		for i, s := range res.DateSuggestions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s)
		}
	}
}

func printTurns(w io.Writer, turns []models.Turn) {
	for _, t := range turns {
		fmt.Fprintf(w, "    %s: %s\n", t.Sender, t.Message)
		fmt.Fprintf(w, "      (%s, %+d -> %d)\n", t.Emotion, t.AffinityChange.Total, t.AffinityLevel)
	}
}

func printSummaries(w io.Writer, summaries []models.Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No simulations stored. Run 'auralie run <a> <b>' first.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPAIR\tSTATUS\tDAYS\tVERDICT")
	for _, s := range summaries {
		verdict := "-"
		if s.Compatibility != nil {
			verdict = fmt.Sprintf("%s (%.1f)", s.Compatibility.Rating, s.Compatibility.Score)
		}
		fmt.Fprintf(tw, "%s\t%s & %s\t%s\t%d\t%s\n",
			s.ID, s.Participants.Person1, s.Participants.Person2, s.Status, s.CompletedDays, verdict)
	}
	tw.Flush()
}
