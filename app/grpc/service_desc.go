package grpc

import (
	"context"

	"github.com/vibast-solutions/ms-go-blog-auth/app/types"

	gogrpc "google.golang.org/grpc"
)

const ServiceName = "blog.auth.v1.AuthService"

// AuthServiceServer is the server API for blog.auth.v1.AuthService.
type AuthServiceServer interface {
	ValidateToken(context.Context, *types.ValidateTokenRequest) (*types.ValidateTokenResponse, error)
	Authenticate(context.Context, *types.AuthenticateRequest) (*types.AuthenticationResponse, error)
	CurrentUser(context.Context, *types.CurrentUserRequest) (*types.ValidateTokenResponse, error)
}

var ServiceDesc = gogrpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []gogrpc.MethodDesc{
		{MethodName: "ValidateToken", Handler: unaryHandler("ValidateToken", AuthServiceServer.ValidateToken)},
		{MethodName: "Authenticate", Handler: unaryHandler("Authenticate", AuthServiceServer.Authenticate)},
		{MethodName: "CurrentUser", Handler: unaryHandler("CurrentUser", AuthServiceServer.CurrentUser)},
	},
	Streams: []gogrpc.StreamDesc{},
}

func RegisterAuthServiceServer(s gogrpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req, Resp any](
	method string,
	call func(AuthServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}

		info := &gogrpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		})
	}
}

// AuthServiceClient calls blog.auth.v1.AuthService using the JSON codec, so
// callers do not need generated stubs.
type AuthServiceClient struct {
	cc gogrpc.ClientConnInterface
}

func NewAuthServiceClient(cc gogrpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func (c *AuthServiceClient) ValidateToken(ctx context.Context, in *types.ValidateTokenRequest, opts ...gogrpc.CallOption) (*types.ValidateTokenResponse, error) {
	out := new(types.ValidateTokenResponse)
	if err := c.invoke(ctx, "ValidateToken", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Authenticate(ctx context.Context, in *types.AuthenticateRequest, opts ...gogrpc.CallOption) (*types.AuthenticationResponse, error) {
	out := new(types.AuthenticationResponse)
	if err := c.invoke(ctx, "Authenticate", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) CurrentUser(ctx context.Context, opts ...gogrpc.CallOption) (*types.ValidateTokenResponse, error) {
	out := new(types.ValidateTokenResponse)
	if err := c.invoke(ctx, "CurrentUser", &types.CurrentUserRequest{}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) invoke(ctx context.Context, method string, in, out any, opts []gogrpc.CallOption) error {
	opts = append([]gogrpc.CallOption{gogrpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, fullMethod(method), in, out, opts...)
}
