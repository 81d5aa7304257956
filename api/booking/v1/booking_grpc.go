package bookingv1

import (
	"barber-lab/infrastructure/grpc/codec"
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	BookingService_Send_FullMethodName              = "/barber.v1.BookingService/Send"
	BookingService_OpenChannel_FullMethodName       = "/barber.v1.BookingService/OpenChannel"
	BookingService_OpenDirectory_FullMethodName     = "/barber.v1.BookingService/OpenDirectory"
	BookingService_SubmitAppointment_FullMethodName = "/barber.v1.BookingService/SubmitAppointment"
	BookingService_ListAppointments_FullMethodName  = "/barber.v1.BookingService/ListAppointments"
	BookingService_WatchAppointments_FullMethodName = "/barber.v1.BookingService/WatchAppointments"
)

type BookingServiceServer interface {
	Send(context.Context, *SendRequest) (*Message, error)
	OpenChannel(*OpenChannelRequest, grpc.ServerStreamingServer[ChannelEvent]) error
	OpenDirectory(*OpenDirectoryRequest, grpc.ServerStreamingServer[DirectoryEvent]) error
	SubmitAppointment(context.Context, *SubmitAppointmentRequest) (*Appointment, error)
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
	WatchAppointments(*WatchAppointmentsRequest, grpc.ServerStreamingServer[Appointment]) error
}

// UnimplementedBookingServiceServer answers Unimplemented for every method not overridden.
type UnimplementedBookingServiceServer struct{}

func (UnimplementedBookingServiceServer) Send(context.Context, *SendRequest) (*Message, error) {
	return nil, status.Error(codes.Unimplemented, "method Send not implemented")
}
func (UnimplementedBookingServiceServer) OpenChannel(*OpenChannelRequest, grpc.ServerStreamingServer[ChannelEvent]) error {
	return status.Error(codes.Unimplemented, "method OpenChannel not implemented")
}
func (UnimplementedBookingServiceServer) OpenDirectory(*OpenDirectoryRequest, grpc.ServerStreamingServer[DirectoryEvent]) error {
	return status.Error(codes.Unimplemented, "method OpenDirectory not implemented")
}
func (UnimplementedBookingServiceServer) SubmitAppointment(context.Context, *SubmitAppointmentRequest) (*Appointment, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitAppointment not implemented")
}
func (UnimplementedBookingServiceServer) ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAppointments not implemented")
}
func (UnimplementedBookingServiceServer) WatchAppointments(*WatchAppointmentsRequest, grpc.ServerStreamingServer[Appointment]) error {
	return status.Error(codes.Unimplemented, "method WatchAppointments not implemented")
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingService_ServiceDesc, srv)
}

func _BookingService_Send_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SendRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingServiceServer).Send(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BookingService_Send_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BookingServiceServer).Send(ctx, req.(*SendRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BookingService_SubmitAppointment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitAppointmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingServiceServer).SubmitAppointment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BookingService_SubmitAppointment_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BookingServiceServer).SubmitAppointment(ctx, req.(*SubmitAppointmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BookingService_ListAppointments_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListAppointmentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingServiceServer).ListAppointments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BookingService_ListAppointments_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BookingServiceServer).ListAppointments(ctx, req.(*ListAppointmentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BookingService_OpenChannel_Handler(srv any, stream grpc.ServerStream) error {
	m := new(OpenChannelRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(BookingServiceServer).OpenChannel(m, &grpc.GenericServerStream[OpenChannelRequest, ChannelEvent]{ServerStream: stream})
}

func _BookingService_OpenDirectory_Handler(srv any, stream grpc.ServerStream) error {
	m := new(OpenDirectoryRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(BookingServiceServer).OpenDirectory(m, &grpc.GenericServerStream[OpenDirectoryRequest, DirectoryEvent]{ServerStream: stream})
}

func _BookingService_WatchAppointments_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchAppointmentsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(BookingServiceServer).WatchAppointments(m, &grpc.GenericServerStream[WatchAppointmentsRequest, Appointment]{ServerStream: stream})
}

var BookingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "barber.v1.BookingService",
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Send", Handler: _BookingService_Send_Handler},
		{MethodName: "SubmitAppointment", Handler: _BookingService_SubmitAppointment_Handler},
		{MethodName: "ListAppointments", Handler: _BookingService_ListAppointments_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "OpenChannel", Handler: _BookingService_OpenChannel_Handler, ServerStreams: true},
		{StreamName: "OpenDirectory", Handler: _BookingService_OpenDirectory_Handler, ServerStreams: true},
		{StreamName: "WatchAppointments", Handler: _BookingService_WatchAppointments_Handler, ServerStreams: true},
	},
	Metadata: "api/booking/v1/booking.go",
}

type BookingServiceClient interface {
	Send(ctx context.Context, in *SendRequest, opts ...grpc.CallOption) (*Message, error)
	OpenChannel(ctx context.Context, in *OpenChannelRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChannelEvent], error)
	OpenDirectory(ctx context.Context, in *OpenDirectoryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[DirectoryEvent], error)
	SubmitAppointment(ctx context.Context, in *SubmitAppointmentRequest, opts ...grpc.CallOption) (*Appointment, error)
	ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error)
	WatchAppointments(ctx context.Context, in *WatchAppointmentsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Appointment], error)
}

type bookingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBookingServiceClient returns a client whose calls always use the JSON codec.
func NewBookingServiceClient(cc grpc.ClientConnInterface) BookingServiceClient {
	return &bookingServiceClient{cc: cc}
}

func (c *bookingServiceClient) Send(ctx context.Context, in *SendRequest, opts ...grpc.CallOption) (*Message, error) {
	out := new(Message)
	if err := c.cc.Invoke(ctx, BookingService_Send_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookingServiceClient) SubmitAppointment(ctx context.Context, in *SubmitAppointmentRequest, opts ...grpc.CallOption) (*Appointment, error) {
	out := new(Appointment)
	if err := c.cc.Invoke(ctx, BookingService_SubmitAppointment_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookingServiceClient) ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	out := new(ListAppointmentsResponse)
	if err := c.cc.Invoke(ctx, BookingService_ListAppointments_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookingServiceClient) OpenChannel(ctx context.Context, in *OpenChannelRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChannelEvent], error) {
	return openStream[OpenChannelRequest, ChannelEvent](ctx, c.cc, &BookingService_ServiceDesc.Streams[0],
		BookingService_OpenChannel_FullMethodName, in, opts)
}

func (c *bookingServiceClient) OpenDirectory(ctx context.Context, in *OpenDirectoryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[DirectoryEvent], error) {
	return openStream[OpenDirectoryRequest, DirectoryEvent](ctx, c.cc, &BookingService_ServiceDesc.Streams[1],
		BookingService_OpenDirectory_FullMethodName, in, opts)
}

func (c *bookingServiceClient) WatchAppointments(ctx context.Context, in *WatchAppointmentsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Appointment], error) {
	return openStream[WatchAppointmentsRequest, Appointment](ctx, c.cc, &BookingService_ServiceDesc.Streams[2],
		BookingService_WatchAppointments_FullMethodName, in, opts)
}

func openStream[Req, Res any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc,
	method string, in *Req, opts []grpc.CallOption) (grpc.ServerStreamingClient[Res], error) {
	stream, err := cc.NewStream(ctx, desc, method, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Req, Res]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{codec.CallOption()}, opts...)
}
