package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

func (a *app) newValidateCommand() *cobra.Command {
	var (
		asSchema bool
		key      string
	)
	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Check schema form data (or, with --schema, a stored definition)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.load(cmd.Context(), inputArg(args))
			if err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()

			if asSchema {
				result := validation.ValidateDefinition(cmd.Context(), raw.Source(), raw.Raw(), validation.DefinitionOptions{
					Codec: a.codec(),
					Key:   key,
				})
				for _, issue := range result.Issues {
					if issue.Path != "" {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", issue.Path, issue.Message)
					} else {
						fmt.Fprintln(cmd.ErrOrStderr(), issue.Message)
					}
				}
				if !result.Valid {
					return ErrValidation
				}
				fmt.Fprintln(stdout, "ok")
				return nil
			}

			fields, err := loader.ParseFieldList(raw)
			if err != nil {
				return err
			}
			if errs := validation.CheckFields(a.codec(), fields); len(errs) > 0 {
				reportValidation(cmd.ErrOrStderr(), errs)
				return ErrValidation
			}
			fmt.Fprintln(stdout, "ok")
			return nil
		},
	}
	cmd.Flags().BoolVar(&asSchema, "schema", false, "treat the input as a stored JSON Schema definition")
	cmd.Flags().StringVar(&key, "key", "", "with --schema, validate definitions.<key>")
	return cmd
}
