package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jurix/internal/replay"
	"jurix/internal/transcript"
	"jurix/internal/types"
)

// roleSequence collapses consecutive duplicate roles for the parse summary.
func roleSequence(turns []types.Turn) []string {
	var seq []string
	for _, turn := range turns {
		if len(seq) == 0 || seq[len(seq)-1] != turn.Role {
			seq = append(seq, turn.Role)
		}
	}
	return seq
}

const version = "1.0.0"

// replayCmd steps through a stored simulation in the terminal.
var replayCmd = &cobra.Command{
	Use:   "replay [simulation-id]",
	Short: "Replay a stored simulation turn by turn",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		result, ok, err := s.store.GetSimulation(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("simulation %s not found", args[0])
		}

		program := tea.NewProgram(replay.New(result), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

// showCmd prints a stored simulation summary without the TUI.
var showCmd = &cobra.Command{
	Use:   "show [simulation-id]",
	Short: "Print a stored simulation result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		if len(args) == 0 {
			ids, err := s.store.ListSimulations()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("No stored simulations.")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		}

		result, ok, err := s.store.GetSimulation(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("simulation %s not found", args[0])
		}

		fmt.Printf("Simulation: %s\n", result.SimulationID)
		fmt.Printf("Status:     %s\n", result.Status)
		fmt.Printf("Path:       %s\n", result.Tier)
		fmt.Printf("Generated:  %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("Evidence:   %d items\n", result.EvidenceAnalyzed)
		fmt.Printf("Turns:      %d\n\n", len(result.Turns))
		for _, turn := range result.Turns {
			fmt.Printf("[%s] %s: %s\n", turn.Timestamp, turn.Role, turn.Message)
		}
		return nil
	},
}

// statusCmd reports provider-tier readiness.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provider chain health",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		fmt.Println("Provider chain:")
		for _, th := range s.chain.Health(cmd.Context(), cfg.GetProbeTimeout()) {
			state := "down"
			if th.Ready {
				state = "ready"
			}
			fmt.Printf("  %-8s %-6s %s\n", th.Tier, state, th.Detail)
		}

		if s.oneShot != nil {
			fmt.Println("One-shot fallback: configured")
		} else {
			fmt.Println("One-shot fallback: not configured")
		}
		return nil
	},
}

// parseCmd runs the transcript parser over a file, for fixture debugging.
var parseCmd = &cobra.Command{
	Use:   "parse [transcript-file]",
	Short: "Parse a transcript file into structured turns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}

		turns := transcript.Parse(string(data))
		if len(turns) == 0 {
			fmt.Println("No role-attributed turns found.")
			return nil
		}
		for _, turn := range turns {
			preview := turn.Message
			if len(preview) > 100 {
				preview = preview[:100] + "..."
			}
			fmt.Printf("%3d [%s] %-10s %s\n", turn.Number, turn.Timestamp, turn.Role, preview)
		}
		fmt.Printf("\n%d turns, roles: %s\n", len(turns), strings.Join(roleSequence(turns), " > "))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jurix version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jurix %s\n", version)
	},
}
