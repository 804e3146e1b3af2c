package main

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/locator"
	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/transfer"
)

var (
	inspectSlot string
	inspectRaw  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <save.dat>",
	Short: "Show the layout of a save file and where its creatures are",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSlot, "slot", "", `Only look at one address, "Slot3" or "Box0 -> Slot1"`)
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "Dump the decoded tag tree")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	input := &transfer.InspectInput{SavePath: args[0]}
	if inspectSlot != "" {
		addr, err := locator.ParseAddress(inspectSlot)
		if err != nil {
			return err
		}
		input.Address = &addr
	}

	svc, err := newTransfer(cfg.OutputDir, nil)
	if err != nil {
		return err
	}

	output, err := svc.Inspect(ctx, input)
	if err != nil {
		return err
	}

	out.Printf("Layout: %s (boxes: %s)\n", output.Shape, output.BoxShape)
	for _, res := range output.Located {
		if !res.Found() {
			out.Printf("  %-16s %s\n", res.Address, res.Reason)
			continue
		}
		species, _ := res.Record.GetString("Species")
		level, _ := res.Record.Integer("Level")
		out.Printf("  %-16s %-24s Lv.%-3d via %s\n", res.Address, species, level, res.Strategy)
	}
	out.Printf("%d creatures located\n", countFound(output.Located))

	if inspectRaw {
		dump := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		if input.Address != nil && len(output.Located) == 1 && output.Located[0].Found() {
			dump.Fdump(os.Stdout, output.Located[0].Record)
			return nil
		}
		dump.Fdump(os.Stdout, output.Root)
	}
	return nil
}

func countFound(results []locator.Result) int {
	n := 0
	for _, res := range results {
		if res.Found() {
			n++
		}
	}
	return n
}
