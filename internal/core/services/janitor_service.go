package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"skyfare/internal/adapters/persistence/repositories"
	"skyfare/internal/metrics"
)

// JanitorService runs scheduled maintenance: it drops session tokens left on
// soft-deleted users and refreshes the per-flight occupancy gauges.
type JanitorService struct {
	userRepo   repositories.UserRepository
	ticketRepo repositories.TicketRepository
	cron       *cron.Cron
}

// NewJanitorService creates a new janitor service
func NewJanitorService(userRepo repositories.UserRepository, ticketRepo repositories.TicketRepository) *JanitorService {
	return &JanitorService{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
		cron:       cron.New(),
	}
}

// Start schedules the nightly sweep (03:30) and runs one immediately so the
// gauges are populated right after boot.
func (s *JanitorService) Start() {
	if _, err := s.cron.AddFunc("30 3 * * *", s.sweep); err != nil {
		log.Printf("❌ Janitor schedule error: %v", err)
		return
	}
	s.cron.Start()
	go s.sweep()
	log.Println("🚀 Janitor started (nightly sweep at 03:30)")
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *JanitorService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Janitor stopped")
}

func (s *JanitorService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := s.userRepo.ClearTokensOfDeleted(ctx)
	if err != nil {
		log.Printf("❌ Janitor token sweep error: %v", err)
	} else if cleared > 0 {
		log.Printf("🧹 Cleared %d stale session tokens", cleared)
	}

	occupancy, err := s.ticketRepo.OccupancyOfFutureFlights(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Janitor occupancy query error: %v", err)
		return
	}
	for _, row := range occupancy {
		metrics.SeatOccupancy.WithLabelValues(row.Code).Set(float64(row.Occupied))
	}
}
