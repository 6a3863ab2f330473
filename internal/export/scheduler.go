package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/store"
)

// Scheduler periodically dumps the invite-code listing to CSV files on disk,
// so admins keep an offline trail without touching the API.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     store.GradeStore
	dir       string
}

func NewScheduler(store store.GradeStore, dir string, everyHours int) (*Scheduler, error) {
	if dir == "" {
		return nil, fmt.Errorf("export dir is not configured")
	}
	if everyHours <= 0 {
		everyHours = 24
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		dir:       dir,
	}

	if _, err := s.scheduler.Every(everyHours).Hours().Do(s.exportInviteCodes); err != nil {
		return nil, fmt.Errorf("failed to schedule export job: %w", err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) exportInviteCodes() {
	codes, err := s.store.ListInviteCodes()
	if err != nil {
		logger.Error.Printf("Export: failed to list invite codes: %v", err)
		return
	}

	path := filepath.Join(s.dir, fmt.Sprintf("invite_codes_%s.csv", time.Now().UTC().Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		logger.Error.Printf("Export: failed to create %s: %v", path, err)
		return
	}
	defer f.Close()

	if err := WriteInviteCodesCSV(f, codes); err != nil {
		logger.Error.Printf("Export: failed to write %s: %v", path, err)
		return
	}

	logger.Info.Printf("Exported %d invite codes to %s", len(codes), path)
}
