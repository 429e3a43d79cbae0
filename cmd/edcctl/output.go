package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/c360studio/edcclient/catalog"
)

// Catalog projections selectable with --view.
const (
	viewDatasets = "datasets"
	viewServices = "services"
	viewAll      = "all"
)

// Output formats selectable with --output.
const (
	outputJSON  = "json"
	outputTable = "table"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// project applies a view to a catalog.
func project(c *catalog.Catalog, view string) ([]catalog.Entry, error) {
	switch view {
	case viewDatasets:
		datasets := c.FlattenDatasets()
		out := make([]catalog.Entry, len(datasets))
		for i := range datasets {
			out[i] = catalog.Entry{Dataset: &datasets[i]}
		}
		return out, nil
	case viewServices:
		services := c.FlattenServices()
		out := make([]catalog.Entry, len(services))
		for i := range services {
			out[i] = catalog.Entry{Service: &services[i]}
		}
		return out, nil
	case viewAll:
		return c.FlattenDatasetsAndServices(), nil
	default:
		return nil, fmt.Errorf("unknown view %q (want %s, %s or %s)", view, viewDatasets, viewServices, viewAll)
	}
}

// printEntries writes entries as JSON records or as a table of kind, id and
// title.
func printEntries(w io.Writer, entries []catalog.Entry, format string) error {
	switch format {
	case outputJSON:
		records := make([]any, len(entries))
		for i, e := range entries {
			if e.Dataset != nil {
				records[i] = e.Dataset
			} else {
				records[i] = e.Service
			}
		}
		return printJSON(w, records)
	case outputTable:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tID\tTITLE")
		for _, e := range entries {
			switch {
			case e.Dataset != nil:
				fmt.Fprintf(tw, "dataset\t%s\t%s\n", e.Dataset.ID, e.Dataset.TitleOr("-"))
			case e.Service != nil:
				fmt.Fprintf(tw, "service\t%s\t%s\n", e.Service.ID, e.Service.TitleOr("-"))
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, outputJSON, outputTable)
	}
}
