package cron

import (
	"log"

	"core/services"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the periodic jobs of the tournament lifecycle. Today that
// is one job: activating pending tournaments whose start date has passed.
type Scheduler struct {
	cron        *cron.Cron
	tournaments *services.TournamentService
}

func NewScheduler(tournaments *services.TournamentService) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		tournaments: tournaments,
	}
}

func (s *Scheduler) Start() error {
	// Every minute, on the minute.
	_, err := s.cron.AddFunc("0 * * * * *", s.activateDue)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Tournament scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) activateDue() {
	activated, err := s.tournaments.ActivateDue()
	if err != nil {
		log.Printf("Failed to activate due tournaments: %v", err)
		return
	}
	if activated > 0 {
		log.Printf("Activated %d tournament(s)", activated)
	}
}
