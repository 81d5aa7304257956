package server_test

import (
	pb "barber-lab/api/booking/v1"
	"barber-lab/auth"
	"barber-lab/client"
	"barber-lab/domain"
	"barber-lab/infrastructure/grpc/server"
	"barber-lab/repositories"
	"barber-lab/runtime"
	"barber-lab/runtime/workers"
	"barber-lab/services"
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type harness struct {
	issuer   *auth.Issuer
	booking  *server.BookingServer
	registry *runtime.Registry
	conn     *grpc.ClientConn
	profiles repositories.IProfileRepository
}

func startServer(t *testing.T) *harness {
	t.Helper()
	return startServerWithBuffer(t, 10)
}

// startServerWithBuffer sizes the live notification buffer of every view.
func startServerWithBuffer(t *testing.T, bufferSize int) *harness {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)

	registry := runtime.NewRegistry()
	orchestrator := runtime.NewOrchestrator(log, workers.NewSupervisor(log, 10*time.Millisecond),
		registry, 100, 10, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = orchestrator.Start(ctx)
		close(done)
	}()

	clock := domain.NewMonotonicClock(nil)
	retry := services.RetryPolicy{Attempts: 2, Backoff: time.Millisecond}
	messages := repositories.NewMessageRepository(db, log, nil)
	profiles := repositories.NewProfileRepository(db)
	booking := server.NewBookingServer(log,
		services.NewMessagingService(log, messages, orchestrator, clock, retry, bufferSize),
		services.NewDirectoryService(log, messages, profiles, orchestrator, retry, bufferSize),
		services.NewIntakeService(log, repositories.NewAppointmentRepository(db, log), orchestrator, clock),
	)

	issuer := auth.NewIssuer("test-secret", time.Hour)
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(issuer.UnaryInterceptor()),
		grpc.ChainStreamInterceptor(issuer.StreamInterceptor()),
	)
	pb.RegisterBookingServiceServer(s, booking)
	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = s.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		s.Stop()
		orchestrator.Stop()
		cancel()
		<-done
		_ = db.Close()
	})
	return &harness{issuer: issuer, booking: booking, registry: registry, conn: conn, profiles: profiles}
}

func (h *harness) client(t *testing.T, id domain.Identity) *client.Client {
	token, err := h.issuer.GenerateToken(id)
	require.NoError(t, err)
	return client.New(h.conn, token)
}

func TestBookingServer_Rejects_Anonymous_Calls(t *testing.T) {
	req := require.New(t)
	h := startServer(t)

	_, err := client.New(h.conn, "not-a-token").Send(context.Background(), "shop", "hello")
	req.Equal(codes.Unauthenticated, status.Code(err))
}

func TestBookingServer_Send_Validation(t *testing.T) {
	req := require.New(t)
	h := startServer(t)

	_, err := h.client(t, "customer").Send(context.Background(), "shop", "   ")
	req.Equal(codes.InvalidArgument, status.Code(err))
}

func TestBookingServer_Channel_Streams_History_Then_Live(t *testing.T) {
	req := require.New(t)
	h := startServer(t)
	customer := h.client(t, "customer")
	shop := h.client(t, "shop")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := customer.Send(ctx, "shop", "Hello")
	req.NoError(err)

	events := make(chan *pb.ChannelEvent, 10)
	go func() {
		_ = shop.Conversation(ctx, "customer", func(evt *pb.ChannelEvent) error {
			events <- evt
			return nil
		})
	}()

	history := receive(t, events)
	req.False(history.Live)
	req.Equal(first.MessageID, history.Message.MessageID)

	second, err := customer.Send(ctx, "shop", "Is 3pm free?")
	req.NoError(err)
	live := receive(t, events)
	req.True(live.Live)
	req.Equal(second.MessageID, live.Message.MessageID)
	req.Equal("customer", live.Message.SenderID)

	// The stream ending releases the subscription
	cancel()
	req.Eventually(func() bool { return h.registry.Topics() == 0 }, time.Second, 5*time.Millisecond)
}

func TestBookingServer_Directory_Lists_New_Customers(t *testing.T) {
	req := require.New(t)
	h := startServer(t)
	req.NoError(h.profiles.SaveProfile(domain.Profile{ID: "customer", Kind: domain.CustomerProfile, FirstName: "Jo", LastName: "Diaz"}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shop := h.client(t, "shop")
	events := make(chan *pb.DirectoryEvent, 10)
	go func() {
		_ = shop.Directory(ctx, func(evt *pb.DirectoryEvent) error {
			events <- evt
			return nil
		})
	}()
	req.Eventually(func() bool { return h.registry.Topics() == 1 }, time.Second, 5*time.Millisecond)

	_, err := h.client(t, "customer").Send(ctx, "shop", "Hi!")
	req.NoError(err)

	evt := receive(t, events)
	req.True(evt.Live)
	req.Equal("customer", evt.Entry.CounterpartyID)
	req.Equal("Jo Diaz", evt.Entry.DisplayName)
}

func TestBookingServer_Appointments(t *testing.T) {
	req := require.New(t)
	h := startServer(t)
	shop := h.client(t, "shop")
	customer := h.client(t, "customer")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watched := make(chan *pb.Appointment, 10)
	go func() {
		_ = shop.WatchAppointments(ctx, func(a *pb.Appointment) error {
			watched <- a
			return nil
		})
	}()
	req.Eventually(func() bool { return h.registry.Topics() == 1 }, time.Second, 5*time.Millisecond)

	_, err := customer.Book(ctx, &pb.SubmitAppointmentRequest{ShopID: "shop", Name: "Jo", Phone: "555"})
	req.Equal(codes.InvalidArgument, status.Code(err))

	booked, err := customer.Book(ctx, &pb.SubmitAppointmentRequest{
		ShopID: "shop", Name: "Jo", Phone: "555", Service: "Fade", Time: "Sat 10:00",
	})
	req.NoError(err)
	req.Equal("customer", booked.CustomerID)
	req.Equal(booked.AppointmentID, receive(t, watched).AppointmentID)

	appointments, err := shop.Appointments(ctx)
	req.NoError(err)
	req.Len(appointments, 1)
	req.Equal("Fade", appointments[0].Service)

	appointments, err = customer.Appointments(ctx)
	req.NoError(err)
	req.Empty(appointments)
}

func TestBookingServer_Close_Ends_Open_Streams(t *testing.T) {
	req := require.New(t)
	h := startServer(t)
	shop := h.client(t, "shop")

	ended := make(chan error, 1)
	go func() {
		ended <- shop.Conversation(context.Background(), "customer", func(*pb.ChannelEvent) error { return nil })
	}()
	req.Eventually(func() bool { return h.registry.Topics() == 1 }, time.Second, 5*time.Millisecond)

	h.booking.Close()
	req.NoError(receive(t, ended))
	req.Eventually(func() bool { return h.registry.Topics() == 0 }, time.Second, 5*time.Millisecond)
}

// gatedStream holds every live send until the gate opens.
type gatedStream struct {
	grpc.ServerStream
	ctx    context.Context
	gate   chan struct{}
	events chan *pb.ChannelEvent
}

func (g *gatedStream) Context() context.Context { return g.ctx }

func (g *gatedStream) Send(evt *pb.ChannelEvent) error {
	if evt.Live {
		<-g.gate
	}
	g.events <- evt
	return nil
}

func TestBookingServer_Channel_Slow_Reader_Catches_Up(t *testing.T) {
	req := require.New(t)
	h := startServerWithBuffer(t, 1)
	customer := h.client(t, "customer")
	ctx, cancel := context.WithCancel(auth.WithIdentity(context.Background(), "shop"))
	defer cancel()

	stream := &gatedStream{ctx: ctx, gate: make(chan struct{}), events: make(chan *pb.ChannelEvent, 10)}
	ended := make(chan error, 1)
	go func() {
		ended <- h.booking.OpenChannel(&pb.OpenChannelRequest{Counterparty: "customer"}, stream)
	}()
	req.Eventually(func() bool { return h.registry.Topics() == 1 }, time.Second, 5*time.Millisecond)

	// Given the reader is stuck while three messages arrive
	var sent []string
	for _, content := range []string{"one", "two", "three"} {
		m, err := customer.Send(context.Background(), "shop", content)
		req.NoError(err)
		sent = append(sent, m.MessageID)
	}
	time.Sleep(50 * time.Millisecond)

	// When it resumes
	close(stream.gate)

	// Then every message is delivered once, in order
	var got []string
	for range sent {
		got = append(got, receive(t, stream.events).Message.MessageID)
	}
	req.Equal(sent, got)
	select {
	case extra := <-stream.events:
		req.Failf("unexpected event", "%v", extra)
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	req.NoError(receive(t, ended))
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		require.Fail(t, "nothing received in time")
	}
	var zero T
	return zero
}
