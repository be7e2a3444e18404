package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/service/transaction"
	"github.com/mamadbah2/stockdesk/pkg/clients/inventory"
)

func newGoodsCmd(envFile *string) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "goods",
		Short: "List the goods catalog from the inventory backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			catalog, err := inventory.NewClient(cfg.Inventory).ListGoods(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOME\tREGISTRO\tFABRICANTE\tTIPO")
			for _, g := range transaction.FilterGoods(catalog, query) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", g.ID, g.Name, g.RegistrationNumber, g.Manufacturer, g.Type)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show goods whose name contains this text")

	return cmd
}
