package workers

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Health is one sample of the server's load.
type Health struct {
	At            time.Time
	CPU           float64
	RAM           float32
	QueueLength   int
	QueueCapacity int
	Topics        int
}

// QueueProbe reports the length and capacity of the event queue.
type QueueProbe func() (length, capacity int)

// HealthMonitor periodically samples the process and the event queue.
// Reading len and cap of a channel never blocks the fanout.
type HealthMonitor struct {
	mu                   sync.Mutex
	log                  *slog.Logger
	process              *process.Process
	queue                QueueProbe
	topics               func() int
	metricInterval       time.Duration
	lowCapacityThreshold int
	last                 Health
}

func NewHealthMonitor(log *slog.Logger, queue QueueProbe, topics func() int,
	metricInterval time.Duration, lowCapacityThreshold int) (*HealthMonitor, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &HealthMonitor{
		log:                  log,
		process:              p,
		queue:                queue,
		topics:               topics,
		metricInterval:       metricInterval,
		lowCapacityThreshold: lowCapacityThreshold,
	}, nil
}

func (w *HealthMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample takes one measure and warns when the event queue is close to full.
func (w *HealthMonitor) Sample() Health {
	h := Health{At: time.Now().UTC(), Topics: w.topics()}
	h.QueueLength, h.QueueCapacity = w.queue()

	cpu, err := w.process.CPUPercent()
	if err != nil {
		w.log.Debug("Error while finding process cpu usage", "err", err)
	}
	ram, err := w.process.MemoryPercent()
	if err != nil {
		w.log.Debug("Error while finding process ram usage", "err", err)
	}
	h.CPU, h.RAM = cpu, ram

	if h.QueueCapacity > 0 && h.QueueLength*100 >= h.QueueCapacity*w.lowCapacityThreshold {
		w.log.Warn("Event queue almost full, live views may miss updates",
			"length", h.QueueLength, "capacity", h.QueueCapacity)
	}
	w.log.Debug("Health", "cpu", h.CPU, "ram", h.RAM, "queue", h.QueueLength, "topics", h.Topics)

	w.mu.Lock()
	w.last = h
	w.mu.Unlock()
	return h
}

func (w *HealthMonitor) Last() Health {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Stats flattens the last sample for the debug inspector.
func (w *HealthMonitor) Stats() map[string]any {
	h := w.Last()
	return map[string]any{
		"sampled_at":     h.At.Format(time.RFC3339),
		"cpu_percent":    h.CPU,
		"ram_percent":    h.RAM,
		"queue_length":   h.QueueLength,
		"queue_capacity": h.QueueCapacity,
		"live_topics":    h.Topics,
	}
}
