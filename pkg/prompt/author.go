package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-schemaform/pkg/fieldtypes"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// DefaultTextOptions are the format hints offered for text fields.
var DefaultTextOptions = []string{"text", "textarea", "number", "email", "url", "tel", "color", "date", "datetime"}

// DefaultDisplayTypes are the widgets offered for select lists.
var DefaultDisplayTypes = []string{"select", "checkbox"}

// AuthorOptions configures Author.
type AuthorOptions struct {
	// Registry supplies the field types to choose from.
	Registry *fieldtypes.Registry
	// Existing fields are kept and new ones appended after them.
	Existing []model.FieldDescriptor
	// Targets lists content types reference fields may point at. When empty
	// the target is typed in.
	Targets      []string
	TextOptions  []string
	DisplayTypes []string
}

// Author walks the user through adding fields to a schema and returns the
// resulting schema form data. Every typed value is passed through
// SanitizeText before it is stored.
func Author(ctx context.Context, driver Driver, opts AuthorOptions) ([]model.FieldDescriptor, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	registry := opts.Registry
	if registry == nil {
		registry = fieldtypes.NewRegistry()
	}
	tags := registry.Tags()
	if len(tags) == 0 {
		return nil, ErrNoFieldTypes
	}
	if len(opts.TextOptions) == 0 {
		opts.TextOptions = DefaultTextOptions
	}
	if len(opts.DisplayTypes) == 0 {
		opts.DisplayTypes = DefaultDisplayTypes
	}

	fields := append([]model.FieldDescriptor(nil), opts.Existing...)
	for {
		add, err := driver.Confirm(ctx, ConfirmConfig{
			Message: "Add a field?",
			Default: len(fields) == 0,
		})
		if err != nil {
			return nil, err
		}
		if !add {
			break
		}

		field, err := askField(ctx, driver, opts, tags, fields)
		if err != nil {
			return nil, err
		}
		field.PropertyOrder = len(fields)
		fields = append(fields, field)
		if err := driver.Info(ctx, fmt.Sprintf("Added %s field %q.", field.FieldType, field.FieldTitle)); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func askField(ctx context.Context, driver Driver, opts AuthorOptions, tags []string, existing []model.FieldDescriptor) (model.FieldDescriptor, error) {
	var field model.FieldDescriptor

	title, err := askText(ctx, driver, InputConfig{
		Message:   "Field title",
		Help:      "Shown as the label of the field; must be unique within the schema.",
		Validator: titleValidator(existing),
	})
	if err != nil {
		return field, err
	}
	field.FieldTitle = title

	idx, err := driver.Select(ctx, SelectConfig{Message: "Field type", Options: tags})
	if err != nil {
		return field, err
	}
	if idx < 0 || idx >= len(tags) {
		return field, fmt.Errorf("prompt: field type selection %d out of range", idx)
	}
	field.FieldType = tags[idx]

	if field.IsRequired, err = driver.Confirm(ctx, ConfirmConfig{Message: "Required?"}); err != nil {
		return field, err
	}
	if field.IsSearchable, err = driver.Confirm(ctx, ConfirmConfig{Message: "Searchable?"}); err != nil {
		return field, err
	}

	switch field.FieldType {
	case model.FieldTypeText:
		choice, err := choose(ctx, driver, "Text format", opts.TextOptions)
		if err != nil {
			return field, err
		}
		field.TextOptions = choice
	case model.FieldTypeSelectList:
		options, err := askOptions(ctx, driver)
		if err != nil {
			return field, err
		}
		field.FieldOptions = options
		display, err := choose(ctx, driver, "Display as", opts.DisplayTypes)
		if err != nil {
			return field, err
		}
		field.DisplayType = display
	case model.FieldTypeReference:
		if len(opts.Targets) > 0 {
			target, err := choose(ctx, driver, "Referenced content type", opts.Targets)
			if err != nil {
				return field, err
			}
			field.ReferenceTarget = target
		} else {
			target, err := askText(ctx, driver, InputConfig{
				Message:   "Referenced content type",
				Validator: requiredValidator("referenced content type"),
			})
			if err != nil {
				return field, err
			}
			field.ReferenceTarget = target
		}
	}
	return field, nil
}

// askText re-prompts until the sanitized answer passes the validator. Drivers
// are not required to run the validator themselves.
func askText(ctx context.Context, driver Driver, cfg InputConfig) (string, error) {
	for {
		answer, err := driver.Input(ctx, cfg)
		if err != nil {
			return "", err
		}
		cleaned := SanitizeText(answer)
		if cfg.Validator == nil {
			return cleaned, nil
		}
		if err := cfg.Validator(cleaned); err != nil {
			if infoErr := driver.Info(ctx, err.Error()); infoErr != nil {
				return "", infoErr
			}
			continue
		}
		return cleaned, nil
	}
}

func askOptions(ctx context.Context, driver Driver) ([]string, error) {
	for {
		answer, err := driver.TextArea(ctx, TextAreaConfig{
			Message: "Options (one per line)",
		})
		if err != nil {
			return nil, err
		}
		if options := SanitizeLines(answer); len(options) > 0 {
			return options, nil
		}
		if err := driver.Info(ctx, "A select list needs at least one option."); err != nil {
			return nil, err
		}
	}
}

func choose(ctx context.Context, driver Driver, message string, options []string) (string, error) {
	idx, err := driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("prompt: %s selection %d out of range", message, idx)
	}
	return options[idx], nil
}

func titleValidator(existing []model.FieldDescriptor) func(string) error {
	taken := make(map[string]struct{}, len(existing))
	for _, field := range existing {
		taken[field.FieldTitle] = struct{}{}
	}
	return func(value string) error {
		cleaned := SanitizeText(value)
		if cleaned == "" {
			return errors.New("field title is required")
		}
		if cleaned == schema.LocalIDKey {
			return fmt.Errorf("field title %q is reserved", cleaned)
		}
		if _, ok := taken[cleaned]; ok {
			return fmt.Errorf("field title %q is already used", cleaned)
		}
		return nil
	}
}

func requiredValidator(label string) func(string) error {
	return func(value string) error {
		if SanitizeText(value) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}
