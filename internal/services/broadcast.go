package services

import (
	"fmt"
	"log"
	"strings"
)

// TextSender delivers a plain text message to a private chat.
type TextSender interface {
	SendText(chatID int64, text string) error
}

// BroadcastService fans a maintainer message out to every participant,
// best-effort per recipient.
type BroadcastService struct {
	roster      *RosterService
	sender      TextSender
	maintainers map[int64]bool
}

func NewBroadcastService(roster *RosterService, sender TextSender, maintainers []int64) *BroadcastService {
	set := make(map[int64]bool, len(maintainers))
	for _, id := range maintainers {
		set[id] = true
	}
	return &BroadcastService{roster: roster, sender: sender, maintainers: set}
}

// Broadcast sends text to all participants. Maintainer recipients get a
// "Broadcast from ..." preface; the sending maintainer is skipped entirely.
// Delivery failures are logged and do not stop the fan-out.
func (s *BroadcastService) Broadcast(fromID int64, fromName, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyInput
	}

	participants, err := s.roster.Participants()
	if err != nil {
		return 0, fmt.Errorf("broadcast: %w", err)
	}

	sent := 0
	for _, p := range participants {
		if s.maintainers[p.ID] {
			if p.ID == fromID {
				continue
			}
			if err := s.sender.SendText(p.ID, fmt.Sprintf("Broadcast from %s", fromName)); err != nil {
				log.Printf("broadcast: preface to %d: %v", p.ID, err)
			}
		}
		if err := s.sender.SendText(p.ID, text); err != nil {
			log.Printf("broadcast: send to %d: %v", p.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
