package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Full method names of the userkeeper.v1.Users service.
const (
	UsersServiceName            = "userkeeper.v1.Users"
	UsersCreateUserFullMethod   = "/userkeeper.v1.Users/CreateUser"
	UsersGetUserFullMethod      = "/userkeeper.v1.Users/GetUser"
	UsersGetAvatarFullMethod    = "/userkeeper.v1.Users/GetAvatar"
	UsersDeleteAvatarFullMethod = "/userkeeper.v1.Users/DeleteAvatar"
)

// UsersServer is the server API for the userkeeper.v1.Users service.
// Messages are protobuf well-known types so no generated code is needed.
type UsersServer interface {
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetUser(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	GetAvatar(context.Context, *wrapperspb.Int64Value) (*wrapperspb.StringValue, error)
	DeleteAvatar(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
}

// RegisterUsersServer registers srv on s.
func RegisterUsersServer(s grpc.ServiceRegistrar, srv UsersServer) {
	s.RegisterService(&UsersServiceDesc, srv)
}

// UsersServiceDesc is the grpc.ServiceDesc for the userkeeper.v1.Users service.
var UsersServiceDesc = grpc.ServiceDesc{
	ServiceName: UsersServiceName,
	HandlerType: (*UsersServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateUser", Handler: createUserHandler},
		{MethodName: "GetUser", Handler: getUserHandler},
		{MethodName: "GetAvatar", Handler: getAvatarHandler},
		{MethodName: "DeleteAvatar", Handler: deleteAvatarHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "userkeeper/v1/users.proto",
}

func createUserHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UsersServer).CreateUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UsersCreateUserFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UsersServer).CreateUser(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getUserHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UsersServer).GetUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UsersGetUserFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UsersServer).GetUser(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func getAvatarHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UsersServer).GetAvatar(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UsersGetAvatarFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UsersServer).GetAvatar(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteAvatarHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UsersServer).DeleteAvatar(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UsersDeleteAvatarFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UsersServer).DeleteAvatar(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}
