// Command bidctl places bids on a listing page served by the listing server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"listing-bidder/internal/bidform"
	"listing-bidder/internal/biddingerrors"
	"listing-bidder/internal/config"
	"listing-bidder/internal/sender"
	"listing-bidder/utils"

	"github.com/spf13/cobra"
)

type options struct {
	baseURL   string
	listingID string
	price     string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{}

	root := &cobra.Command{
		Use:           "bidctl",
		Short:         "Place bids on auction listings",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			utils.SetLogOutput(cmd.ErrOrStderr())
			return utils.SetLogLevel(cfg.LogLevel)
		},
	}
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", cfg.BaseURL, "listing server base URL")
	root.PersistentFlags().StringVar(&opts.listingID, "listing", "", "listing id")
	_ = root.MarkPersistentFlagRequired("listing")

	root.AddCommand(newShowCmd(cfg, opts), newBidCmd(cfg, opts))
	return root
}

func newShowCmd(cfg *config.Config, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the listing's bid count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sender.New(opts.baseURL, sender.WithTimeout(cfg.HTTPTimeout))
			if err != nil {
				return err
			}
			doc, form, _, err := bidform.Open(cmd.Context(), s, opts.listingID)
			if errors.Is(err, biddingerrors.ErrBidFormNotFound) {
				count, countErr := doc.BidsCountText()
				if countErr != nil {
					return countErr
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				fmt.Fprintln(cmd.OutOrStdout(), "listing is closed for bidding")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), form.CountText())
			return nil
		},
	}
}

func newBidCmd(cfg *config.Config, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bid",
		Short: "Submit a bid and print the updated count or the field errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := strconv.ParseFloat(opts.price, 64); err != nil {
				return fmt.Errorf("--price %q is not a number", opts.price)
			}
			return placeBid(cmd, cfg, opts)
		},
	}
	cmd.Flags().StringVar(&opts.price, "price", "", "bid amount")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func placeBid(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	ctx := cmd.Context()

	s, err := sender.New(opts.baseURL, sender.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		return err
	}
	_, form, submitter, err := bidform.Open(ctx, s, opts.listingID)
	if err != nil {
		return err
	}

	form.SetPrice(opts.price)
	err = submitter.PlaceBid(ctx)

	out := cmd.OutOrStdout()
	var rejected *bidform.RejectedError
	switch {
	case err == nil:
		fmt.Fprintln(out, form.CountText())
		return nil
	case errors.As(err, &rejected):
		for _, alert := range form.Alerts() {
			fmt.Fprintln(out, alert)
		}
		return err
	default:
		return err
	}
}
