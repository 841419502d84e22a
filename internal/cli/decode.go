package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/internal/loader"
)

func (a *app) newDecodeCommand() *cobra.Command {
	var (
		out outputFlags
		key string
	)
	cmd := &cobra.Command{
		Use:   "decode [schema-file|-]",
		Short: "Decode a JSON Schema definition back into schema form data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.load(cmd.Context(), inputArg(args))
			if err != nil {
				return err
			}
			def, err := loader.ParseDefinition(raw, key)
			if err != nil {
				return err
			}
			fields, err := a.codec().Decode(def)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), out, fields)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "decode definitions.<key> instead of the document root")
	cmd.Flags().StringVarP(&out.path, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&out.format, "format", "json", "output format (json, yaml)")
	return cmd
}
