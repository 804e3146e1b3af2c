package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/extractor"
	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/transfer"
)

var importOutput string

var importCmd = &cobra.Command{
	Use:   "import <save.dat>...",
	Short: "Write every creature in save files as JSON records",
	Long: `Import reads the party slots and every PC box of each save file and writes
one JSON record per creature into the output directory, claiming the next
free box address for each.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importOutput, "output", "", "Record directory (defaults to output_dir from the config)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	dir := importOutput
	if dir == "" {
		dir = cfg.OutputDir
	}

	names, err := openUsernames(ctx)
	if err != nil {
		return err
	}
	defer names.Close(context.WithoutCancel(ctx))

	svc, err := newTransfer(dir, names.resolver)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		output, err := svc.Import(ctx, &transfer.ImportInput{SavePath: path})
		if errors.IsCanceled(err) {
			return err
		}
		if output == nil {
			slog.ErrorContext(ctx, "Failed to import save file", "path", path, "error", err.Error())
			failed++
			continue
		}
		printImport(path, output)
	}

	if failed > 0 {
		return errors.Internalf("%d of %d save files could not be loaded", failed, len(args))
	}
	return nil
}

func printImport(path string, output *transfer.ImportOutput) {
	out.Printf("\n%s (%s)\n", path, output.Shape)
	for _, slot := range output.Slots {
		res := slot.Result
		switch res.Status {
		case extractor.StatusNotFound:
			out.Printf("    %-16s empty: %s\n", res.Address, res.Reason)
		case extractor.StatusDecodeError:
			out.Printf("    %-16s unreadable: %v\n", res.Address, res.Err)
		case extractor.StatusFound:
			printImportedSlot(slot)
		}
	}

	s := output.Summary
	out.Printf("Found %d, saved %d, empty %d, unreadable %d, failed %d\n",
		s.Found, s.Saved, s.NotFound, s.DecodeErrors, s.Failed)
}

func printImportedSlot(slot *transfer.ImportedSlot) {
	c := slot.Result.Creature
	var level int64
	if c.Level != nil {
		level = *c.Level
	}
	shiny := c.Shiny != nil && *c.Shiny != 0

	where := "no free box slot"
	if slot.Address != nil {
		where = slot.Address.String()
	}

	if slot.Err != nil {
		out.Printf("  %s %-16s %-14s Lv.%-3d not saved: %v\n",
			out.Shiny(shiny), slot.Result.Address, c.SpeciesName(), level, slot.Err)
		return
	}
	out.Printf("  %s %-16s %-14s Lv.%-3d -> %s (%s)\n",
		out.Shiny(shiny), slot.Result.Address, c.SpeciesName(), level, slot.Saved, where)
}
