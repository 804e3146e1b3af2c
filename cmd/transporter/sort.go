package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/clients/pokeapi"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/sorting"
)

var sortDest string

var sortCmd = &cobra.Command{
	Use:   "sort [dir]",
	Short: "Move records into per-generation folders",
	Long: `Sort looks up the national dex number of each record's species and moves
the file into Gen1 through Gen9 under the destination. Files that cannot be
looked up stay where they are.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSort,
}

func init() {
	sortCmd.Flags().StringVar(&sortDest, "dest", "", "Folder receiving GenN subfolders (defaults to the record directory)")
}

func runSort(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	if cfg.PokeAPI.Disabled {
		return errors.FailedPrecondition("the species service is disabled in the config")
	}

	dir := cfg.OutputDir
	if len(args) == 1 {
		dir = args[0]
	}

	client, err := pokeapi.New(&pokeapi.Config{
		BaseURL:        cfg.PokeAPI.BaseURL,
		Attempts:       cfg.PokeAPI.Attempts,
		RetryDelay:     cfg.PokeAPI.RetryDelay,
		AttemptTimeout: cfg.PokeAPI.AttemptTimeout,
	})
	if err != nil {
		return err
	}

	svc, err := sorting.NewOrchestrator(&sorting.Config{
		Species:     client,
		Concurrency: cfg.Sort.Concurrency,
	})
	if err != nil {
		return err
	}

	output, err := svc.Sort(ctx, &sorting.SortInput{Dir: dir, Dest: sortDest})
	if err != nil {
		return err
	}

	for _, file := range output.Files {
		if file.Err != nil {
			out.Printf("kept  %s: %v\n", file.Name, file.Err)
			continue
		}
		out.Printf("Gen%d  %s (#%d)\n", file.Generation, file.Name, file.DexNumber)
	}
	out.Printf("Moved %d, kept %d\n", output.Moved, output.Failed)
	return nil
}
