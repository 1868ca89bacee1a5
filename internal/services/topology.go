package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/offdroid/spreebreak-2024ws-bot/internal/models"

	"gorm.io/gorm"
)

// TopicTransport is the judge-chat side of the chat transport used for
// topology mutations.
type TopicTransport interface {
	CreateTopic(name string) (int64, error)
	CloseTopic(topicID int64) error
}

// TopologyService keeps the forum topics of the judge chat in sync with the
// live team set. Reconcile is the single guarded entry point for every
// topology mutation; nothing else creates or closes topics.
type TopologyService struct {
	db     *gorm.DB
	roster *RosterService
	topics TopicTransport

	// Serializes reconciliations. Two concurrent runs could both observe a
	// missing topic for the same team and allocate it twice.
	mu sync.Mutex
}

func NewTopologyService(db *gorm.DB, roster *RosterService, topics TopicTransport) *TopologyService {
	return &TopologyService{db: db, roster: roster, topics: topics}
}

// Reconcile diffs the live team set against the recorded topics, creating a
// topic for every team without an open entry and closing open entries whose
// team vanished. Transport failures for one team never abort the others; the
// joined error is returned for visibility only.
func (s *TopologyService) Reconcile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams, err := s.roster.TeamNames()
	if err != nil {
		return fmt.Errorf("reconcile: load teams: %w", err)
	}

	var topics []models.ForumTopic
	if err := s.db.Find(&topics).Error; err != nil {
		return fmt.Errorf("reconcile: load topics: %w", err)
	}

	live := make(map[string]bool, len(teams))
	for _, t := range teams {
		live[t] = true
	}
	open := make(map[string]bool)
	for _, t := range topics {
		if t.Open {
			open[t.Name] = true
		}
	}

	var errs []error
	for _, team := range teams {
		if open[team] {
			continue
		}
		topicID, err := s.topics.CreateTopic(team)
		if err != nil {
			log.Printf("topology: create topic for %q: %v", team, err)
			errs = append(errs, fmt.Errorf("create %q: %w", team, err))
			continue
		}
		entry := models.ForumTopic{TopicID: topicID, Name: team, Open: true}
		if err := s.db.Create(&entry).Error; err != nil {
			log.Printf("topology: record topic for %q: %v", team, err)
			errs = append(errs, fmt.Errorf("record %q: %w", team, err))
			continue
		}
		log.Printf("topology: created topic %d for team %q", topicID, team)
	}

	for _, topic := range topics {
		if !topic.Open || live[topic.Name] {
			continue
		}
		if err := s.topics.CloseTopic(topic.TopicID); err != nil && !isAlreadyClosed(err) {
			log.Printf("topology: close topic %d (%q): %v", topic.TopicID, topic.Name, err)
			errs = append(errs, fmt.Errorf("close %q: %w", topic.Name, err))
			continue
		}
		err := s.db.Model(&models.ForumTopic{}).
			Where("topic_id = ?", topic.TopicID).
			Update("open", false).Error
		if err != nil {
			errs = append(errs, fmt.Errorf("flag closed %q: %w", topic.Name, err))
			continue
		}
		log.Printf("topology: closed topic %d for team %q", topic.TopicID, topic.Name)
	}

	return errors.Join(errs...)
}

// LookupChannel returns the open topic id for the team, if any. Reads are
// deliberately not serialized against Reconcile; a stale miss only routes a
// submission un-threaded.
func (s *TopologyService) LookupChannel(team string) (int64, bool, error) {
	var topic models.ForumTopic
	err := s.db.Where("name = ? AND open = ?", team, true).First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return topic.TopicID, true, nil
}

// Topics lists every recorded topology entry, open and closed.
func (s *TopologyService) Topics() ([]models.ForumTopic, error) {
	var topics []models.ForumTopic
	err := s.db.Order("name").Find(&topics).Error
	return topics, err
}

// The external side may report a topic as already closed; that makes closing
// idempotent rather than an error.
func isAlreadyClosed(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "already closed")
}
