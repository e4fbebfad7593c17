package commands

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rl1809/ecoscene/internal/adapter/handler"
	"github.com/rl1809/ecoscene/internal/adapter/storage"
	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/service"
)

type quoteFunc func(ctx context.Context, req *handler.QuoteRequest) (*handler.QuoteResponse, error)

type stressResult struct {
	Requests   int
	Succeeded  int32
	Failed     int32
	Mismatched int32
	Duration   time.Duration
}

func stressCmd() *cobra.Command {
	var (
		addr        string
		requests    int
		concurrency int
		currency    string
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Fire concurrent quotes and verify every response is identical",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			quote, closeFn, err := newQuoter(addr)
			if err != nil {
				return err
			}
			defer closeFn()

			req := stressRequest(currency)
			res, err := runStress(ctx, quote, req, requests, concurrency)
			if err != nil {
				return err
			}
			printStress(cmd.OutOrStdout(), res)

			if res.Failed > 0 || res.Mismatched > 0 {
				return fmt.Errorf("%d failed, %d mismatched", res.Failed, res.Mismatched)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "gRPC address of a running server (empty runs in process)")
	cmd.Flags().IntVar(&requests, "requests", 1000, "total quote requests")
	cmd.Flags().IntVar(&concurrency, "concurrency", 50, "requests in flight")
	cmd.Flags().StringVar(&currency, "currency", "USD", "quote currency")
	return cmd
}

func newQuoter(addr string) (quoteFunc, func(), error) {
	if addr == "" {
		svc := service.NewCartService(catalog, storage.NewMemoryCartStore(), logger)
		h := handler.NewGRPCHandler(svc)
		return h.Quote, func() {}, nil
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	client := handler.NewPricingClient(conn)
	quote := func(ctx context.Context, req *handler.QuoteRequest) (*handler.QuoteResponse, error) {
		return client.Quote(ctx, req)
	}
	return quote, func() { conn.Close() }, nil
}

// stressRequest quotes one of every in-stock fixture.
func stressRequest(currency string) *handler.QuoteRequest {
	req := &handler.QuoteRequest{Currency: currency}
	for i, p := range storage.Fixtures() {
		if p.InStock {
			req.Items = append(req.Items, handler.LineRequest{ProductID: p.ID, Quantity: i%3 + 1})
		}
	}
	return req
}

func runStress(ctx context.Context, quote quoteFunc, req *handler.QuoteRequest, requests, concurrency int) (stressResult, error) {
	if requests < 1 || concurrency < 1 {
		return stressResult{}, fmt.Errorf("requests and concurrency must be positive")
	}

	reference, err := quote(ctx, req)
	if err != nil {
		return stressResult{}, fmt.Errorf("reference quote: %w", err)
	}

	var succeeded, failed, mismatched atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	start := time.Now()
	for i := 0; i < requests; i++ {
		g.Go(func() error {
			resp, err := quote(gctx, req)
			if err != nil {
				failed.Add(1)
				logger.Debug().Err(err).Msg("quote failed")
				return nil
			}
			succeeded.Add(1)
			if !sameTotals(resp.Totals, reference.Totals) {
				mismatched.Add(1)
				logger.Warn().
					Interface("got", resp.Totals).
					Interface("want", reference.Totals).
					Msg("quote mismatch")
			}
			return nil
		})
	}
	g.Wait()

	return stressResult{
		Requests:   requests,
		Succeeded:  succeeded.Load(),
		Failed:     failed.Load(),
		Mismatched: mismatched.Load(),
		Duration:   time.Since(start),
	}, nil
}

// sameTotals compares bit for bit; pricing is deterministic.
func sameTotals(a, b domain.PricingResult) bool {
	return a == b
}

func printStress(w io.Writer, r stressResult) {
	fmt.Fprintln(w, "========== STRESS TEST RESULTS ==========")
	fmt.Fprintf(w, "Total Requests:   %d\n", r.Requests)
	fmt.Fprintf(w, "Successful:       %d\n", r.Succeeded)
	fmt.Fprintf(w, "Failed:           %d\n", r.Failed)
	fmt.Fprintf(w, "Mismatched:       %d\n", r.Mismatched)
	fmt.Fprintf(w, "Duration:         %v\n", r.Duration)
	if r.Duration > 0 {
		fmt.Fprintf(w, "Throughput:       %.0f req/s\n", float64(r.Requests)/r.Duration.Seconds())
	}
	fmt.Fprintln(w, "==========================================")

	if r.Failed == 0 && r.Mismatched == 0 {
		fmt.Fprintln(w, "PASS: every quote matched the reference")
	} else {
		fmt.Fprintln(w, "FAIL: quotes diverged or errored")
	}
}
