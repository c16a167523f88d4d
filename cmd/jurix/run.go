package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jurix/internal/logging"
)

// runCmd executes one full simulation for a stored case.
var runCmd = &cobra.Command{
	Use:   "run [case-id]",
	Short: "Run a courtroom simulation for a case",
	Long: `Runs the full simulation protocol for a stored case:
  1. Analyze attached evidence (optional per case)
  2. Drive prosecutor, defense, and judge agents through the session
  3. Fall back to a one-shot remote narrative, then a static script,
     if the agent path fails
  4. Parse the transcript into replayable turns
  5. Validate and persist the result with read-back verification`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulation,
}

func runSimulation(cmd *cobra.Command, args []string) error {
	caseID := args[0]
	requestID := uuid.New().String()[:8]
	rlog := logging.WithRequestID(logging.CategoryCourtroom, requestID)
	rlog.Info("run requested for case %s", caseID)

	s, err := buildStack(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	result, err := s.orch.Run(cmd.Context(), caseID)
	if err != nil {
		rlog.Error("run failed: %v", err)
		return err
	}

	logger.Info("simulation completed",
		zap.String("simulation_id", result.SimulationID),
		zap.String("tier", string(result.Tier)),
		zap.Int("turns", len(result.Turns)),
		zap.Int("evidence", result.EvidenceAnalyzed),
	)

	fmt.Printf("Simulation %s completed\n", result.SimulationID)
	fmt.Printf("  Path:     %s\n", result.Tier)
	fmt.Printf("  Turns:    %d\n", len(result.Turns))
	fmt.Printf("  Evidence: %d items analyzed\n", result.EvidenceAnalyzed)
	fmt.Printf("\nReplay with: jurix replay %s\n", result.SimulationID)
	return nil
}
