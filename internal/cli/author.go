package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/prompt"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

func (a *app) newAuthorCommand() *cobra.Command {
	var (
		out        outputFlags
		doc        documentFlags
		fromFields string
		fromSchema string
		targets    []string
		emit       string
	)
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Build schema form data interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if fromFields != "" && fromSchema != "" {
				return fmt.Errorf("--fields and --schema are mutually exclusive")
			}

			var existing []model.FieldDescriptor
			switch {
			case fromFields != "":
				raw, err := a.load(ctx, fromFields)
				if err != nil {
					return err
				}
				if existing, err = loader.ParseFieldList(raw); err != nil {
					return err
				}
			case fromSchema != "":
				raw, err := a.load(ctx, fromSchema)
				if err != nil {
					return err
				}
				def, err := loader.ParseDefinition(raw, doc.key)
				if err != nil {
					return err
				}
				if existing, err = a.codec().Decode(def); err != nil {
					return err
				}
			}

			c := a.codec()
			fields, err := prompt.Author(ctx, a.driver(), prompt.AuthorOptions{
				Registry: c.Registry(),
				Existing: existing,
				Targets:  targets,
			})
			if err != nil {
				return err
			}
			if errs := validation.CheckFields(c, fields); len(errs) > 0 {
				reportValidation(cmd.ErrOrStderr(), errs)
				return ErrValidation
			}
			a.logger.Info().Int("fields", len(fields)).Msg("authored schema form data")

			switch emit {
			case "fields":
				return a.write(cmd.OutOrStdout(), out, fields)
			case "definition":
				result, err := a.encode(fields, doc)
				if err != nil {
					return err
				}
				return a.write(cmd.OutOrStdout(), out, result)
			default:
				return fmt.Errorf("unknown --emit value %q (want fields or definition)", emit)
			}
		},
	}
	doc.register(cmd)
	cmd.Flags().StringVar(&fromFields, "fields", "", "start from an existing field list")
	cmd.Flags().StringVar(&fromSchema, "schema", "", "start from an existing definition (use --key for definitions.<key>)")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "content types reference fields may point at (repeatable)")
	cmd.Flags().StringVar(&emit, "emit", "definition", "what to write: fields or definition")
	cmd.Flags().StringVarP(&out.path, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&out.format, "format", "json", "output format (json, yaml)")
	return cmd
}
