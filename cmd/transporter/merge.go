package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/locator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/transfer"
)

var (
	mergeBox  int
	mergeSlot int
)

var mergeCmd = &cobra.Command{
	Use:   "merge <save.dat> <record.json>",
	Short: "Overwrite one stored creature with a JSON record",
	Long: `Merge applies the fields present in the record to the creature at the given
address, keeping every tag the record does not mention. Indexes match the
save file keys: --slot 3 is party Slot3, --box 0 --slot 1 is Box0 -> Slot1.`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().IntVar(&mergeBox, "box", -1, "Box index; omit for a party slot")
	mergeCmd.Flags().IntVar(&mergeSlot, "slot", -1, "Slot index")
	_ = mergeCmd.MarkFlagRequired("slot")
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	addr := locator.PartySlot(mergeSlot)
	if cmd.Flags().Changed("box") {
		addr = locator.BoxSlot(mergeBox, mergeSlot)
	}
	if !addr.InRange() {
		return errors.OutOfRangef("%s is outside the save file grid", addr)
	}

	svc, err := newTransfer(cfg.OutputDir, nil)
	if err != nil {
		return err
	}

	output, err := svc.Merge(ctx, &transfer.MergeInput{
		SavePath:   args[0],
		RecordPath: args[1],
		Address:    addr,
	})
	if err != nil {
		return err
	}

	for _, w := range output.Report.Warnings {
		out.Printf("    skipped %s: %s\n", w.Field, w.Message)
	}
	out.Printf("Updated %s (%s)\n", addr, output.Strategy)
	return nil
}
