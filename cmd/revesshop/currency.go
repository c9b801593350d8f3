package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	client "github.com/revesshop/revesshop-client"
)

func newRatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the exchange rate table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			raw, err := a.client.RatesRaw(ctx)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), raw)
		},
	}
}

func newConvertCmd(a *app) *cobra.Command {
	var from, to string
	var price bool

	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Convert an amount between currencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[0])
			}
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			var res *client.ConversionResult
			if price {
				res, err = a.client.ConvertPrice(ctx, amount, to)
			} else {
				res, err = a.client.Convert(ctx, amount, from, to)
			}
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source currency (default MXN)")
	cmd.Flags().StringVar(&to, "to", "", "Target currency (default USD)")
	cmd.Flags().BoolVar(&price, "price", false, "Treat amount as a catalog price in "+client.PriceCurrency)
	cmd.MarkFlagsMutuallyExclusive("from", "price")
	return cmd
}

// newWaitCmd polls the rates endpoint until the API answers, backing off
// exponentially. Errors the backend will keep returning stop the wait early.
func newWaitCmd(a *app) *cobra.Command {
	var timeout, initial, maxInterval time.Duration

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until the API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = initial
			exp.Multiplier = 2
			exp.MaxInterval = maxInterval
			exp.MaxElapsedTime = 0
			exp.Reset()

			attempts := 0
			start := time.Now()
			op := func() error {
				attempts++
				_, err := a.client.RatesRaw(ctx)
				if err == nil {
					return nil
				}
				if client.IsAPIError(err) && client.IsIrrecoverable(err) {
					return backoff.Permanent(err)
				}
				return err
			}
			notify := func(err error, next time.Duration) {
				log.Debug().Err(err).Int("attempt", attempts).Dur("next", next).Msg("API not ready")
			}

			if err := backoff.RetryNotify(op, backoff.WithContext(exp, ctx), notify); err != nil {
				return fmt.Errorf("API not ready after %d attempts: %w", attempts, err)
			}
			log.Info().Int("attempts", attempts).Dur("elapsed", time.Since(start)).Msg("API is ready")
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "ready")
			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Give up after this long")
	cmd.Flags().DurationVar(&initial, "interval", 500*time.Millisecond, "First retry interval")
	cmd.Flags().DurationVar(&maxInterval, "max-interval", 5*time.Second, "Upper bound on the retry interval")
	return cmd
}
