package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/edcclient/catalog"
	"github.com/c360studio/edcclient/export"
	"github.com/c360studio/edcclient/query"
)

func catalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Request, flatten and export catalogs",
	}
	cmd.AddCommand(
		catalogRequestCmd(a),
		catalogDatasetCmd(a),
		catalogFlattenCmd(a),
		catalogExportCmd(a),
	)
	return cmd
}

func catalogRequestCmd(a *app) *cobra.Command {
	var (
		address, counterParty string
		view, output          string
		limit                 int
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request the catalog of a counter-party",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := catalog.NewRequest(address).
				WithCounterParty(counterParty).
				WithQuery(query.All().Page(0, limit))

			c, err := a.client().Catalog().Request(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.logger.Debug("Catalog received", "id", c.ID, "participant", c.ParticipantID, "children", len(c.Children))

			entries, err := project(&c, view)
			if err != nil {
				return err
			}
			return printEntries(a.out, entries, output)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Counter-party protocol address")
	cmd.Flags().StringVar(&counterParty, "counter-party", "", "Counter-party participant id")
	cmd.Flags().StringVar(&view, "view", viewAll, "Projection: datasets, services or all")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or table")
	cmd.Flags().IntVar(&limit, "limit", query.DefaultLimit, "Maximum number of datasets")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func catalogDatasetCmd(a *app) *cobra.Command {
	var address, counterParty string

	cmd := &cobra.Command{
		Use:   "dataset ID",
		Short: "Request a single dataset of a counter-party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := catalog.NewDatasetRequest(args[0], address)
			req.CounterPartyID = counterParty

			node, err := a.client().Catalog().Dataset(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(a.out, node.FlattenDatasets())
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Counter-party protocol address")
	cmd.Flags().StringVar(&counterParty, "counter-party", "", "Counter-party participant id")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func catalogFlattenCmd(a *app) *cobra.Command {
	var view, output string

	cmd := &cobra.Command{
		Use:   "flatten FILE...",
		Short: "Flatten saved catalog responses",
		Long: `Flatten reads catalog responses saved as JSON (comments and trailing
commas are accepted) and prints the selected projection. Arguments may be
glob patterns such as "catalogs/**/*.json"; "-" reads standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args)
			if err != nil {
				return err
			}

			var entries []catalog.Entry
			for _, path := range paths {
				c, err := readCatalog(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				projected, err := project(c, view)
				if err != nil {
					return err
				}
				a.logger.Debug("Flattened catalog", "path", path, "entries", len(projected))
				entries = append(entries, projected...)
			}
			return printEntries(a.out, entries, output)
		},
	}

	cmd.Flags().StringVar(&view, "view", viewAll, "Projection: datasets, services or all")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or table")
	return cmd
}

func catalogExportCmd(a *app) *cobra.Command {
	var (
		format, profile string
		base, outPath   string
	)

	cmd := &cobra.Command{
		Use:   "export FILE...",
		Short: "Export saved catalog responses as RDF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			p, err := export.ParseProfile(profile)
			if err != nil {
				return err
			}
			paths, err := expandInputs(args)
			if err != nil {
				return err
			}

			exporter := export.NewRDFExporter(p, export.WithBase(base))
			for _, path := range paths {
				c, err := readCatalog(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				exporter.AddCatalog(c)
			}

			rendered, err := exporter.Export(f)
			if err != nil {
				return err
			}
			a.logger.Debug("Exported catalog", "format", f, "profile", p, "entities", exporter.Len())

			if outPath == "" {
				_, err = fmt.Fprint(a.out, rendered)
				return err
			}
			if err := os.WriteFile(outPath, []byte(rendered), 0644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			a.logger.Info("Wrote export", "path", outPath, "entities", exporter.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatTurtle), "RDF format: turtle, ntriples or jsonld")
	cmd.Flags().StringVar(&profile, "profile", string(export.ProfileOffers), "Export profile: minimal, offers or full")
	cmd.Flags().StringVar(&base, "base", export.DefaultBase, "Namespace for ids that are not IRIs")
	cmd.Flags().StringVar(&outPath, "out", "", "Write to this file instead of standard output")
	return cmd
}
