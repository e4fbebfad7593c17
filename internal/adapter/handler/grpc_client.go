package handler

import (
	"context"

	"google.golang.org/grpc"
)

// PricingClient calls PricingService over a connection using the JSON codec.
type PricingClient struct {
	cc grpc.ClientConnInterface
}

func NewPricingClient(cc grpc.ClientConnInterface) *PricingClient {
	return &PricingClient{cc: cc}
}

func (c *PricingClient) Quote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error) {
	out := new(QuoteResponse)
	if err := c.invoke(ctx, "Quote", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PricingClient) CartQuote(ctx context.Context, in *CartQuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error) {
	out := new(QuoteResponse)
	if err := c.invoke(ctx, "CartQuote", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PricingClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsonCodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+pricingServiceName+"/"+method, in, out, opts...)
}
