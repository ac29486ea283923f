package gameserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// The service exchanges google.protobuf.Struct messages, so it needs no
// generated code: the descriptor below is what protoc-gen-go-grpc would
// produce for
//
//	service GameService {
//	  rpc CreateGame(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc GetGame(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc PerformAction(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc PlayAI(google.protobuf.Struct) returns (google.protobuf.Struct);
//	}

const (
	GameService_CreateGame_FullMethodName    = "/quebec.v1.GameService/CreateGame"
	GameService_GetGame_FullMethodName       = "/quebec.v1.GameService/GetGame"
	GameService_PerformAction_FullMethodName = "/quebec.v1.GameService/PerformAction"
	GameService_PlayAI_FullMethodName        = "/quebec.v1.GameService/PlayAI"
)

// GameServiceClient is the client API for the game service
type GameServiceClient interface {
	CreateGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PerformAction(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PlayAI(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type gameServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGameServiceClient(cc grpc.ClientConnInterface) GameServiceClient {
	return &gameServiceClient{cc}
}

func (c *gameServiceClient) CreateGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GameService_CreateGame_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) GetGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GameService_GetGame_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) PerformAction(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GameService_PerformAction_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) PlayAI(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GameService_PlayAI_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GameServiceServer is the server API for the game service
type GameServiceServer interface {
	CreateGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PerformAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlayAI(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedGameServiceServer can be embedded to have forward compatible
// implementations.
type UnimplementedGameServiceServer struct{}

func (UnimplementedGameServiceServer) CreateGame(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateGame not implemented")
}
func (UnimplementedGameServiceServer) GetGame(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetGame not implemented")
}
func (UnimplementedGameServiceServer) PerformAction(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PerformAction not implemented")
}
func (UnimplementedGameServiceServer) PlayAI(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PlayAI not implemented")
}

func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameService_ServiceDesc, srv)
}

// unaryHandler adapts one method of the server to the grpc handler signature
func unaryHandler(fullMethod string, call func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GameService_ServiceDesc is the grpc.ServiceDesc for the game service
var GameService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "quebec.v1.GameService",
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateGame",
			Handler:    unaryHandler(GameService_CreateGame_FullMethodName, GameServiceServer.CreateGame),
		},
		{
			MethodName: "GetGame",
			Handler:    unaryHandler(GameService_GetGame_FullMethodName, GameServiceServer.GetGame),
		},
		{
			MethodName: "PerformAction",
			Handler:    unaryHandler(GameService_PerformAction_FullMethodName, GameServiceServer.PerformAction),
		},
		{
			MethodName: "PlayAI",
			Handler:    unaryHandler(GameService_PlayAI_FullMethodName, GameServiceServer.PlayAI),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quebec/v1/game.proto",
}
