package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvandessel/auralie/internal/activity"
	"github.com/nvandessel/auralie/internal/models"
	"github.com/nvandessel/auralie/internal/persona"
)

const chatHelp = `Type a message and press enter. Commands:
  /day     advance to the next day
  /state   show the persona's current affinity and emotion
  /quit    end the chat and ask for a final impression`

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <profile>",
		Short: "Text a persona yourself",
		Long: `Start an interactive texting session with one persona. Their affinity
toward you moves with every reply, exactly as it would toward another
persona, but no personality or value penalties apply.

` + chatHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			profiles, err := a.profileStore()
			if err != nil {
				return err
			}
			p, err := profiles.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load profile %s: %w", args[0], err)
			}
			client, err := a.client(ctx)
			if err != nil {
				return err
			}
			trace := a.trace()
			defer trace.Close()

			name, _ := cmd.Flags().GetString("name")
			start := a.cfg.Simulation.StartingAffinity
			agent := persona.New(p, client, persona.Options{
				StartingAffinity: &start,
				Temperature:      a.cfg.LLM.Temperature,
				Logger:           a.logger,
				Trace:            trace,
			})
			agent.SetPartnerName(name)

			return chat(ctx, agent, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("name", "you", "Name the persona knows you by")
	return cmd
}

// chat runs the REPL until EOF, /quit or ctx is done.
func chat(ctx context.Context, agent *persona.Agent, in io.Reader, out io.Writer) error {
	p := agent.Profile()
	fmt.Fprintf(out, "Chatting with %s (%d, %s). %s\n\n", p.Name, p.Age, p.Personality, firstLine(chatHelp))

	day := 1
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit":
			return closeChat(ctx, agent, day, out)
		case "/day":
			day++
			fmt.Fprintf(out, "-- day %d --\n", day)
			continue
		case "/state":
			s := agent.State()
			fmt.Fprintf(out, "%s: affinity %d/100, feeling %s\n", p.Name, s.Level(), s.Emotion())
			continue
		}

		turn, err := agent.Respond(ctx, line, day, "texting - "+activity.TextingContext(day, "evening"))
		if err != nil {
			return err
		}
		printChatTurn(out, turn)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return closeChat(ctx, agent, day, out)
}

func closeChat(ctx context.Context, agent *persona.Agent, day int, out io.Writer) error {
	if len(agent.State().History()) == 0 {
		return nil
	}
	statement, err := agent.FinalStatement(ctx, day)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s (affinity %d/100): %s\n", agent.Profile().Name, agent.State().Level(), statement)
	return nil
}

func printChatTurn(out io.Writer, t models.Turn) {
	fmt.Fprintf(out, "%s: %s\n", t.Sender, t.Message)
	fmt.Fprintf(out, "  (%s, %+d -> %d)\n", t.Emotion, t.AffinityChange.Total, t.AffinityLevel)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
