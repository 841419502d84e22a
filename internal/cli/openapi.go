package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/openapi"
)

func (a *app) newOpenAPICommand() *cobra.Command {
	var (
		output string
		opts   openapi.ExportOptions
	)
	cmd := &cobra.Command{
		Use:   "openapi [schema-file|-]",
		Short: "Publish a schema document as OpenAPI component schemas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.load(cmd.Context(), inputArg(args))
			if err != nil {
				return err
			}
			def, err := loader.ParseDefinition(raw, "")
			if err != nil {
				return err
			}
			doc, err := openapi.Export(def, opts)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), outputFlags{path: output, format: "json"}, doc)
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", "", "info.title of the generated document")
	cmd.Flags().StringVar(&opts.Version, "api-version", "", "info.version of the generated document")
	cmd.Flags().StringVar(&opts.RootName, "root-name", "", "also export the document root under this component name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
