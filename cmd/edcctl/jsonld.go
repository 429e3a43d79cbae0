package main

import (
	"github.com/spf13/cobra"

	"github.com/c360studio/edcclient/jsonld"
)

func jsonldCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonld",
		Short: "Expand and compact JSON-LD documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "expand FILE",
		Short: "Expand every term of a document to a full IRI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			expanded, err := jsonld.Expand(data)
			if err != nil {
				return err
			}
			return printJSON(a.out, expanded)
		},
	})

	var policyContext bool
	compact := &cobra.Command{
		Use:   "compact FILE",
		Short: "Compact a document against the connector context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := jsonld.DefaultContext()
			if policyContext {
				ctx = jsonld.PolicyContext()
			}
			compacted, err := jsonld.Compact(data, ctx)
			if err != nil {
				return err
			}
			return printJSON(a.out, compacted)
		},
	}
	compact.Flags().BoolVar(&policyContext, "policy", false, "Also bind the odrl prefix")
	cmd.AddCommand(compact)

	return cmd
}
