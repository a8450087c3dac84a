package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

func jsonOutput() bool {
	return output == "json"
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, r *domain.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, field := range domain.Fields {
		fmt.Fprintf(tw, "%s\t%s\n", field, r.Fields[field])
	}
	fmt.Fprintf(tw, "\nvalid:\t%v\n", r.IsValid)
	return tw.Flush()
}
