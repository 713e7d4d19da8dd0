package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "gophaccounts.AccountService"

// Full method names, also used by interceptors.
const (
	MethodRegister           = "/" + ServiceName + "/Register"
	MethodVerifyEmail        = "/" + ServiceName + "/VerifyEmail"
	MethodResendVerification = "/" + ServiceName + "/ResendVerification"
	MethodLogin              = "/" + ServiceName + "/Login"
	MethodChangePassword     = "/" + ServiceName + "/ChangePassword"
	MethodGetProfile         = "/" + ServiceName + "/GetProfile"
	MethodUpdateProfile      = "/" + ServiceName + "/UpdateProfile"
	MethodListUsers          = "/" + ServiceName + "/ListUsers"
	MethodPing               = "/" + ServiceName + "/Ping"
)

// AccountServiceServer is implemented by the server transport.
type AccountServiceServer interface {
	Register(context.Context, *RegisterRequest) (*Account, error)
	VerifyEmail(context.Context, *VerifyEmailRequest) (*Account, error)
	ResendVerification(context.Context, *ResendVerificationRequest) (*StatusResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*StatusResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*Account, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Account, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

func unary[Req, Resp any](name string, call func(AccountServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AccountServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AccountServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes AccountService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", AccountServiceServer.Register),
		unary("VerifyEmail", AccountServiceServer.VerifyEmail),
		unary("ResendVerification", AccountServiceServer.ResendVerification),
		unary("Login", AccountServiceServer.Login),
		unary("ChangePassword", AccountServiceServer.ChangePassword),
		unary("GetProfile", AccountServiceServer.GetProfile),
		unary("UpdateProfile", AccountServiceServer.UpdateProfile),
		unary("ListUsers", AccountServiceServer.ListUsers),
		unary("Ping", AccountServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accounts.proto",
}

// RegisterAccountServiceServer registers srv on s.
func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
