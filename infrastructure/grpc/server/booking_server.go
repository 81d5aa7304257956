package server

import (
	pb "barber-lab/api/booking/v1"
	"barber-lab/auth"
	"barber-lab/domain"
	"barber-lab/domain/event"
	"barber-lab/errors"
	"barber-lab/services"
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type BookingServer struct {
	pb.UnimplementedBookingServiceServer
	log       *slog.Logger
	messaging services.IMessagingService
	directory services.IDirectoryService
	intake    services.IIntakeService
	done      chan struct{}
	closeOnce sync.Once
}

func NewBookingServer(log *slog.Logger, messaging services.IMessagingService,
	directory services.IDirectoryService, intake services.IIntakeService) *BookingServer {
	return &BookingServer{log: log, messaging: messaging, directory: directory, intake: intake,
		done: make(chan struct{})}
}

// Close ends every open stream so a graceful stop does not wait on idle viewers.
func (s *BookingServer) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *BookingServer) Send(ctx context.Context, req *pb.SendRequest) (*pb.Message, error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	message, err := s.messaging.Send(ctx, caller, domain.Identity(req.To), req.Content)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toMessage(message), nil
}

// OpenChannel streams the conversation with the counterparty: the current feed first,
// then every new message until the client goes away.
func (s *BookingServer) OpenChannel(req *pb.OpenChannelRequest, stream grpc.ServerStreamingServer[pb.ChannelEvent]) error {
	ctx := stream.Context()
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	channel, err := s.messaging.OpenChannel(ctx, caller, domain.Identity(req.Counterparty))
	if err != nil {
		return errors.MapToGRPCError(err)
	}
	defer channel.Close()

	sent := make(map[uuid.UUID]struct{})
	for _, m := range channel.Messages() {
		sent[m.ID] = struct{}{}
		if err := stream.Send(&pb.ChannelEvent{Message: toMessage(m)}); err != nil {
			return err
		}
	}
	for {
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			s.log.Debug("Channel stream closed by client", "caller", caller, "counterparty", req.Counterparty)
			return nil
		case _, ok := <-channel.Updates():
			if !ok {
				return nil
			}
			// Notifications are dropped when the reader lags, the feed itself is complete.
			if err := s.catchUp(stream, channel.Messages(), sent); err != nil {
				s.log.Error("Failed to push message to stream", "caller", caller, "error", err)
				return err
			}
		}
	}
}

// catchUp pushes every message of the feed not yet sent on the stream, oldest first.
func (s *BookingServer) catchUp(stream grpc.ServerStreamingServer[pb.ChannelEvent],
	feed []domain.Message, sent map[uuid.UUID]struct{}) error {
	for _, m := range feed {
		if _, dup := sent[m.ID]; dup {
			continue
		}
		sent[m.ID] = struct{}{}
		if err := stream.Send(&pb.ChannelEvent{Message: toMessage(m), Live: true}); err != nil {
			return err
		}
	}
	return nil
}

func (s *BookingServer) OpenDirectory(_ *pb.OpenDirectoryRequest, stream grpc.ServerStreamingServer[pb.DirectoryEvent]) error {
	ctx := stream.Context()
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	directory, err := s.directory.OpenDirectory(ctx, caller)
	if err != nil {
		return errors.MapToGRPCError(err)
	}
	defer directory.Close()

	listed := make(map[domain.Identity]struct{})
	for _, entry := range directory.Entries() {
		listed[entry.CounterpartyID] = struct{}{}
		if err := stream.Send(&pb.DirectoryEvent{Entry: toEntry(entry)}); err != nil {
			return err
		}
	}
	for {
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			return nil
		case entry, ok := <-directory.Updates():
			if !ok {
				return nil
			}
			if _, dup := listed[entry.CounterpartyID]; dup {
				continue
			}
			listed[entry.CounterpartyID] = struct{}{}
			if err := stream.Send(&pb.DirectoryEvent{Entry: toEntry(entry), Live: true}); err != nil {
				s.log.Error("Failed to push directory entry to stream", "caller", caller, "error", err)
				return err
			}
		}
	}
}

// SubmitAppointment books on behalf of the caller.
func (s *BookingServer) SubmitAppointment(ctx context.Context, req *pb.SubmitAppointmentRequest) (*pb.Appointment, error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	appointment, err := s.intake.Submit(ctx, services.AppointmentRequest{
		ShopID:     domain.Identity(req.ShopID),
		CustomerID: caller,
		Name:       req.Name,
		Phone:      req.Phone,
		Service:    req.Service,
		Time:       req.Time,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toAppointment(appointment), nil
}

// ListAppointments returns the requests made to the calling shop.
func (s *BookingServer) ListAppointments(ctx context.Context, _ *pb.ListAppointmentsRequest) (*pb.ListAppointmentsResponse, error) {
	caller, err := callerOf(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.intake.ListAppointments(ctx, caller)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.ListAppointmentsResponse{Appointments: lo.Map(appointments, func(a domain.Appointment, _ int) *pb.Appointment {
		return toAppointment(a)
	})}, nil
}

func (s *BookingServer) WatchAppointments(_ *pb.WatchAppointmentsRequest, stream grpc.ServerStreamingServer[pb.Appointment]) error {
	ctx := stream.Context()
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	sub := s.intake.Watch(caller)
	defer sub.Close()
	for {
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			return nil
		case evt, ok := <-sub.Events():
			if !ok {
				return nil
			}
			submitted, ok := evt.(event.AppointmentSubmitted)
			if !ok {
				continue
			}
			if err := stream.Send(toAppointment(submitted.Appointment)); err != nil {
				return err
			}
		}
	}
}

func callerOf(ctx context.Context) (domain.Identity, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "caller identity is missing")
	}
	return id, nil
}

func toMessage(m domain.Message) *pb.Message {
	return &pb.Message{
		MessageID:  m.ID.String(),
		SenderID:   string(m.SenderID),
		ReceiverID: string(m.ReceiverID),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

func toEntry(e domain.DirectoryEntry) *pb.DirectoryEntry {
	return &pb.DirectoryEntry{
		CounterpartyID: string(e.CounterpartyID),
		DisplayName:    e.DisplayName,
		Resolved:       e.Resolved,
		LastMessageAt:  e.LastMessageAt,
	}
}

func toAppointment(a domain.Appointment) *pb.Appointment {
	return &pb.Appointment{
		AppointmentID: a.ID.String(),
		ShopID:        string(a.ShopID),
		CustomerID:    string(a.CustomerID),
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		Service:       a.Service,
		Time:          a.Time,
		CreatedAt:     a.CreatedAt,
	}
}
