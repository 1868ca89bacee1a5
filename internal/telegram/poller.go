package telegram

import (
	"log"
	"time"
)

const longPollTimeout = 30 // seconds, server-side

// Poller drives the bot through getUpdates long polling, used when no
// webhook base URL is configured.
type Poller struct {
	client   *Client
	handler  *UpdateHandler
	interval time.Duration
	stopCh   chan struct{}
}

func NewPoller(client *Client, handler *UpdateHandler, interval time.Duration) *Poller {
	return &Poller{
		client:   client,
		handler:  handler,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (p *Poller) Start() {
	// A leftover webhook blocks getUpdates.
	if err := p.client.DeleteWebhook(); err != nil {
		log.Printf("[Poller] delete webhook: %v", err)
	}
	go p.loop()
	log.Println("[Poller] started")
}

func (p *Poller) Stop() {
	close(p.stopCh)
	log.Println("[Poller] stopped")
}

func (p *Poller) loop() {
	var offset int64
	for {
		select {
		case <-p.stopCh:
			return
		default:
		}

		updates, err := p.client.GetUpdates(offset, longPollTimeout)
		if err != nil {
			log.Printf("[Poller] get updates: %v", err)
			time.Sleep(p.interval)
			continue
		}
		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			go p.handler.Handle(upd)
		}
	}
}
