package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/edcclient/asset"
	"github.com/c360studio/edcclient/query"
)

func assetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage assets",
	}
	cmd.AddCommand(
		assetGetCmd(a),
		assetQueryCmd(a),
		assetCreateCmd(a),
		assetDeleteCmd(a),
	)
	return cmd
}

func assetGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.client().Assets().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(a.out, found)
		},
	}
}

func assetQueryCmd(a *app) *cobra.Command {
	var (
		filters       []string
		offset, limit int
		sortField     string
		descending    bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List assets matching filters",
		Long: `Query lists assets. Each --filter is either "left=right" or
"left OPERATOR right", for example --filter 'name like %weather%'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := query.All().Page(offset, limit)
			for _, f := range filters {
				c, err := parseFilter(f)
				if err != nil {
					return err
				}
				q.FilterExpression = append(q.FilterExpression, c)
			}
			if sortField != "" {
				order := query.Ascending
				if descending {
					order = query.Descending
				}
				q = q.SortBy(sortField, order)
			}

			assets, err := a.client().Assets().Query(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(a.out, assets)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Filter criterion (repeatable)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Index of the first result")
	cmd.Flags().IntVar(&limit, "limit", query.DefaultLimit, "Maximum number of results")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort field")
	cmd.Flags().BoolVar(&descending, "desc", false, "Sort descending")
	return cmd
}

// parseFilter reads "left=right" or "left OPERATOR right".
func parseFilter(s string) (query.Criterion, error) {
	if fields := strings.Fields(s); len(fields) >= 3 && !strings.Contains(fields[0], "=") {
		rest := strings.TrimSpace(strings.TrimSpace(s)[len(fields[0]):])
		right := strings.TrimSpace(rest[len(fields[1]):])
		return query.NewCriterion(fields[0], fields[1], right), nil
	}
	left, right, ok := strings.Cut(s, "=")
	if !ok || left == "" {
		return query.Criterion{}, fmt.Errorf("invalid filter %q: want left=right or \"left OPERATOR right\"", s)
	}
	return query.NewCriterion(left, "=", right), nil
}

func assetCreateCmd(a *app) *cobra.Command {
	var (
		baseURL string
		props   []string
	)

	cmd := &cobra.Command{
		Use:   "create [ID]",
		Short: "Create an HttpData asset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			na := asset.New(id, asset.HTTPData(baseURL))
			for _, p := range props {
				key, value, ok := strings.Cut(p, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid property %q: want key=value", p)
				}
				na.WithProperty(key, value)
			}

			resp, err := a.client().Assets().Create(cmd.Context(), na)
			if err != nil {
				return err
			}
			a.logger.Info("Asset created", "id", resp.ID)
			return printJSON(a.out, resp)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Backend URL the data plane fetches from")
	cmd.Flags().StringArrayVar(&props, "property", nil, "Public property key=value (repeatable)")
	_ = cmd.MarkFlagRequired("base-url")
	return cmd
}

func assetDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().Assets().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.logger.Info("Asset deleted", "id", args[0])
			return nil
		},
	}
}
