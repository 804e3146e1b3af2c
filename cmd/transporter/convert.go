package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/clients/converter"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/orchestrators/conversion"
)

var convertCmd = &cobra.Command{
	Use:   "convert to-json|to-native <path>...",
	Short: "Run the external converters over files or directories",
	Long: `Convert runs PB8ToJson (to-json) or JsonToPB8 (to-native) once per input.
Directories are expanded to the files the direction accepts. Each run is
bounded by converter.timeout from the config.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	direction, err := converter.ParseDirection(args[0])
	if err != nil {
		return err
	}

	runner, err := converter.New(&converter.Config{
		ToJSONPath:   cfg.Converter.ToJSON,
		ToNativePath: cfg.Converter.ToNative,
		Timeout:      cfg.Converter.Timeout,
	})
	if err != nil {
		return err
	}

	svc, err := conversion.NewOrchestrator(&conversion.Config{Runner: runner})
	if err != nil {
		return err
	}

	output, err := svc.Convert(ctx, &conversion.ConvertInput{
		Direction: direction,
		Paths:     args[1:],
	})
	if err != nil {
		return err
	}

	for _, file := range output.Files {
		if file.Err != nil {
			out.Printf("FAIL %s: %v\n", file.Path, file.Err)
			if stderr, ok := errors.GetMeta(file.Err)["stderr"].(string); ok && stderr != "" {
				out.Printf("     %s\n", stderr)
			}
			continue
		}
		out.Printf("OK   %s (%s)\n", file.Path, file.Result.Duration.Round(time.Millisecond))
	}
	out.Printf("Converted %d, failed %d\n", output.Succeeded, output.Failed)

	if output.Failed > 0 {
		return errors.Abortedf("%d conversions failed", output.Failed)
	}
	return nil
}
