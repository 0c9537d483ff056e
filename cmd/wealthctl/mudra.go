package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wealthin/agent-backend/internal/mudra"
)

var mudraCmd = &cobra.Command{
	Use:   "mudra",
	Short: "Run MUDRA DPR calculations offline",
}

var mudraCalculateCmd = &cobra.Command{
	Use:   "calculate <file>",
	Short: "Calculate a MUDRA Detailed Project Report from a JSON input file",
	Long: `calculate reads a mudra.MudraDPRInput JSON document from <file> and
prints the full mudra.MudraDPROutput (classification, EMI, loan schedule,
P&L/BS projections, DSCR, IRR, break-even, bankability) as indented JSON
to stdout — the same calculation the /mudra-dpr/calculate endpoint runs,
usable without a running server (e.g. batch-scoring a list of DPRs).`,
	Args: cobra.ExactArgs(1),
	RunE: runMudraCalculate,
}

func init() {
	mudraCmd.AddCommand(mudraCalculateCmd)
}

func runMudraCalculate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	var input mudra.MudraDPRInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parse input JSON: %w", err)
	}

	output := mudra.CalculateDPR(input)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
