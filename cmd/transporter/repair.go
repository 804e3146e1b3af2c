package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/transfer"
)

var repairCmd = &cobra.Command{
	Use:   "repair [dir]",
	Short: "Give every stored record a unique box address",
	Long: `Repair walks the record directory in file-name order. The first record
claiming an address keeps it; duplicates, unaddressed and out-of-grid
records move to the first free address.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepair,
}

func runRepair(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	dir := cfg.OutputDir
	if len(args) == 1 {
		dir = args[0]
	}

	svc, err := newTransfer(dir, nil)
	if err != nil {
		return err
	}

	output, err := svc.Repair(ctx, &transfer.RepairInput{})
	if err != nil {
		return err
	}

	for _, move := range output.Moves {
		out.Printf("%s: %s -> %s\n", move.Name, addressOrNone(move.From), addressOrNone(move.To))
	}
	out.Printf("Moved %d records\n", len(output.Moves))
	return nil
}

func addressOrNone(addr *entities.Address) string {
	if addr == nil {
		return "none"
	}
	return addr.String()
}
