package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/transfer"
)

var exportRecords []string

var exportCmd = &cobra.Command{
	Use:   "export <save.dat> --json <record.json>...",
	Short: "Copy JSON records into free slots of a save file",
	Long: `Export duplicates the first stored creature of the save file once per
record, applies the record to the copy, gives it a fresh UUID and stores it
in the next free slot. Nothing is written unless every record fits.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportRecords, "json", nil, "Record files to export")
	_ = exportCmd.MarkFlagRequired("json")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	svc, err := newTransfer(cfg.OutputDir, nil)
	if err != nil {
		return err
	}

	output, err := svc.Export(ctx, &transfer.ExportInput{
		SavePath:    args[0],
		RecordPaths: exportRecords,
	})
	if err != nil {
		return err
	}

	for i, placement := range output.Placements {
		out.Printf("%s -> %s\n", exportRecords[i], placement.Address)
		for _, w := range placement.Report.Warnings {
			out.Printf("    skipped %s: %s\n", w.Field, w.Message)
		}
	}
	out.Printf("Exported %d records into %s\n", len(output.Placements), args[0])
	return nil
}
