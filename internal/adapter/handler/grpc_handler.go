package handler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/service"
)

const pricingServiceName = "ecoscene.pricing.v1.PricingService"

type PricingServer interface {
	Quote(context.Context, *QuoteRequest) (*QuoteResponse, error)
	CartQuote(context.Context, *CartQuoteRequest) (*QuoteResponse, error)
}

var PricingServiceDesc = grpc.ServiceDesc{
	ServiceName: pricingServiceName,
	HandlerType: (*PricingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Quote", Handler: quoteHandler},
		{MethodName: "CartQuote", Handler: cartQuoteHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ecoscene/pricing/v1/pricing",
}

func RegisterPricingServer(s grpc.ServiceRegistrar, srv PricingServer) {
	s.RegisterService(&PricingServiceDesc, srv)
}

func quoteHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(QuoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PricingServer).Quote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + pricingServiceName + "/Quote"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(PricingServer).Quote(ctx, req.(*QuoteRequest))
	})
}

func cartQuoteHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CartQuoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PricingServer).CartQuote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + pricingServiceName + "/CartQuote"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(PricingServer).CartQuote(ctx, req.(*CartQuoteRequest))
	})
}

type GRPCHandler struct {
	cartService *service.CartService
}

func NewGRPCHandler(cartService *service.CartService) *GRPCHandler {
	return &GRPCHandler{cartService: cartService}
}

func (h *GRPCHandler) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, grpcError(err)
	}

	q, err := h.cartService.QuoteLines(ctx, toLines(req.Items), currency)
	if err != nil {
		return nil, grpcError(err)
	}
	return grpcQuote(q)
}

func (h *GRPCHandler) CartQuote(ctx context.Context, req *CartQuoteRequest) (*QuoteResponse, error) {
	if req.UserID == "" {
		return nil, status.Error(codes.InvalidArgument, "missing user_id")
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, grpcError(err)
	}

	q, err := h.cartService.Quote(ctx, req.UserID, currency)
	if err != nil {
		return nil, grpcError(err)
	}
	return grpcQuote(q)
}

func grpcQuote(q service.Quote) (*QuoteResponse, error) {
	resp, err := newQuoteResponse(q)
	if err != nil {
		return nil, grpcError(err)
	}
	return &resp, nil
}

func grpcError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMissingPrice),
		errors.Is(err, domain.ErrUnsupportedCurrency):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// NewGRPCServer registers h on a server that logs every unary call.
func NewGRPCServer(h PricingServer, logger zerolog.Logger) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))
	RegisterPricingServer(s, h)
	return s
}

func loggingInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		ev := logger.Info()
		if err != nil {
			ev = logger.Warn().Err(err)
		}
		ev.Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("latency", time.Since(start)).
			Msg("rpc")
		return resp, err
	}
}
