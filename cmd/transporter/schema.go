package main

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/entities"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of a record file",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	data, err := json.MarshalIndent(recordSchema(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal schema")
	}

	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}

// recordSchema describes record files. Unknown keys are allowed since
// tools may add their own.
func recordSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(new(entities.Creature))
	schema.Title = "Cobblemon creature record"
	schema.Description = "One creature as written by transporter import"
	return schema
}
