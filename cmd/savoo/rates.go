package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var flagForceRefresh bool

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Inspect and refresh the exchange rate table",
}

var ratesRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh rates from the source, falling back to the local cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.services.Currency.RefreshRates(cmd.Context(), flagForceRefresh)
		rates, err := a.services.Currency.ListRates(cmd.Context(), false)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "  %d rates in table\n", len(rates))
		return nil
	},
}

var ratesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the current rate table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		rates, err := a.services.Currency.ListRates(cmd.Context(), false)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "CODE\tRATE TO %s\tFETCHED AT\n", a.services.Currency.BaseCurrency())
		for _, r := range rates {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.CurrencyCode, r.RateToBase.String(), r.FetchedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

func init() {
	ratesRefreshCmd.Flags().BoolVarP(&flagForceRefresh, "force", "f", true, "Ignore the cache TTL and hit the rate source")
	ratesCmd.AddCommand(ratesRefreshCmd, ratesListCmd)
}
