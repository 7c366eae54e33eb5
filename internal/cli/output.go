package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	perr "claimboard/internal/platform/errors"
)

// output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// row is one table line
type row []string

// printer renders v in the chosen format; table falls back to rows when given
type printer struct {
	w      io.Writer
	format string
}

func (p printer) print(v any, header row, rows []row) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		if header == nil {
			return printer{w: p.w, format: FormatYAML}.print(v, nil, nil)
		}
		tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
		writeRow(tw, header)
		for _, r := range rows {
			writeRow(tw, r)
		}
		return tw.Flush()
	default:
		return perr.InvalidArgf("unknown output format %q", p.format)
	}
}

func writeRow(w io.Writer, r row) {
	for i, c := range r {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
