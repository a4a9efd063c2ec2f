// Package render writes resolved option sets as text, JSON, YAML or shell exports.
package render

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/perfconfig/internal/options"
)

// Format selects how a resolved option set is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatEnv  Format = "env"
)

const redacted = "******"

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatJSON, FormatYAML, FormatEnv:
		return f, nil
	}
	return "", fmt.Errorf("%w %q (want text, json, yaml or env)", ErrUnknownFormat, raw)
}

// Options tunes rendering.
type Options struct {
	Redact    bool
	EnvPrefix string
}

// Write renders every option of set in catalog order.
func Write(w io.Writer, set options.Set, format Format, opts Options) error {
	entries := set.Entries()
	if opts.Redact {
		entries = redact(entries)
	}

	switch format {
	case FormatText:
		return writeText(w, entries)
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	case FormatEnv:
		return writeEnv(w, entries, opts.EnvPrefix)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// WriteKeys lists the option catalog.
func WriteKeys(w io.Writer, specs []options.Spec, prefix string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVARIABLE\tKIND\tDESCRIPTION")
	for _, spec := range specs {
		fmt.Fprintf(tw, "%s\t%s%s\t%s\t%s\n", spec.Name, prefix, spec.Name, spec.Kind, spec.Description)
	}
	return tw.Flush()
}

func redact(entries []options.Entry) []options.Entry {
	for i, e := range entries {
		spec, _ := options.SpecFor(e.Name)
		if spec.Secret && e.Value.IsSet() {
			entries[i].Value = options.Of(redacted)
		}
	}
	return entries
}

func writeText(w io.Writer, entries []options.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Value)
	}
	return tw.Flush()
}

// writeJSON keeps catalog order, which a map would lose. Absent values are null.
func writeJSON(w io.Writer, entries []options.Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("{\n")
	for i, e := range entries {
		key, err := json.Marshal(string(e.Name))
		if err != nil {
			return err
		}
		var val any
		if text, ok := e.Value.Get(); ok {
			val = text
		}
		encoded, err := json.Marshal(val)
		if err != nil {
			return err
		}
		sep := ","
		if i == len(entries)-1 {
			sep = ""
		}
		fmt.Fprintf(bw, "  %s: %s%s\n", key, encoded, sep)
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func writeYAML(w io.Writer, entries []options.Entry) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: string(e.Name)}
		val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if text, ok := e.Value.Get(); ok {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: text, Style: yaml.DoubleQuotedStyle}
		}
		doc.Content = append(doc.Content, key, val)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

// writeEnv emits a POSIX shell script suitable for eval.
func writeEnv(w io.Writer, entries []options.Entry, prefix string) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		name := prefix + string(e.Name)
		if text, ok := e.Value.Get(); ok {
			fmt.Fprintf(bw, "export %s=%s\n", name, shellQuote(text))
			continue
		}
		fmt.Fprintf(bw, "unset %s\n", name)
	}
	return bw.Flush()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
