package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

type documentFlags struct {
	key         string
	title       string
	pluralTitle string
	description string
	multiple    bool
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.key, "key", "", "wrap the definition in a schema document under definitions.<key>")
	cmd.Flags().StringVar(&f.title, "title", "", "definition title (with --key)")
	cmd.Flags().StringVar(&f.pluralTitle, "plural-title", "", "definition plural title (with --key)")
	cmd.Flags().StringVar(&f.description, "description", "", "definition description (with --key)")
	cmd.Flags().BoolVar(&f.multiple, "multiple", false, "reference the definition as a list of records (with --key)")
}

func (a *app) newEncodeCommand() *cobra.Command {
	var (
		out            outputFlags
		doc            documentFlags
		skipValidation bool
	)
	cmd := &cobra.Command{
		Use:   "encode [fields-file|-]",
		Short: "Encode schema form data into a JSON Schema definition",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.load(cmd.Context(), inputArg(args))
			if err != nil {
				return err
			}
			fields, err := loader.ParseFieldList(raw)
			if err != nil {
				return err
			}
			if !skipValidation {
				if errs := validation.ValidateSchemaFormData(fields); len(errs) > 0 {
					reportValidation(cmd.ErrOrStderr(), errs)
					return ErrValidation
				}
			}
			result, err := a.encode(fields, doc)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), out, result)
		},
	}
	doc.register(cmd)
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "encode even when field titles are duplicated")
	cmd.Flags().StringVarP(&out.path, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&out.format, "format", "json", "output format (json, yaml)")
	return cmd
}

func (a *app) encode(fields []model.FieldDescriptor, flags documentFlags) (schema.Definition, error) {
	def, err := a.codec().Encode(fields)
	if err != nil {
		return nil, err
	}
	if flags.key == "" {
		return def, nil
	}
	document := schema.NewSchemaDocument(nil)
	return schema.AttachDefinition(document, flags.key, def, schema.AttachOptions{
		Title:       flags.title,
		PluralTitle: flags.pluralTitle,
		Description: flags.description,
		Multiple:    flags.multiple,
	})
}

func reportValidation(w io.Writer, errs []validation.ValidationError) {
	for _, err := range errs {
		fmt.Fprintln(w, err.Message)
	}
}
