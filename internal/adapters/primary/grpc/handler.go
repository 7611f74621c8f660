package grpc

import (
	"google.golang.org/grpc"
)

const (
	ServiceName   = "socialchat.v1.Realtime"
	ConnectMethod = "/" + ServiceName + "/Connect"
)

// RealtimeServer is the server side of the Realtime service. Frames in both
// directions are google.protobuf.Struct values.
type RealtimeServer interface {
	Connect(stream grpc.ServerStream) error
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RealtimeServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Connect",
			Handler:       connectHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "socialchat/v1/realtime.proto",
}

func connectHandler(srv any, stream grpc.ServerStream) error {
	return srv.(RealtimeServer).Connect(stream)
}

func RegisterRealtimeServer(s grpc.ServiceRegistrar, srv RealtimeServer) {
	s.RegisterService(&ServiceDesc, srv)
}
