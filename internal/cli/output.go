package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type outputFlags struct {
	path   string
	format string
}

func (a *app) write(stdout io.Writer, flags outputFlags, value any) error {
	data, err := a.marshal(flags.format, value)
	if err != nil {
		return err
	}
	if flags.path == "" || flags.path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flags.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.path, err)
	}
	a.logger.Info().Str("file", flags.path).Int("bytes", len(data)).Msg("wrote output")
	return nil
}

func (a *app) marshal(format string, value any) ([]byte, error) {
	switch format {
	case "", "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", a.cfg.Output.Indent)
		if err := enc.Encode(value); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		// Round-trip through JSON so custom MarshalJSON methods shape the YAML.
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return yaml.Marshal(generic)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
