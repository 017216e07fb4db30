// Package pending holds events saved to a store but not yet written to disk.
package pending

import "github.com/nbd-wtf/go-nostr"

// Events keeps saved events in insertion order. The zero value is ready to use.
type Events struct {
	byID  map[string]*nostr.Event
	order []*nostr.Event
}

func (p *Events) Get(id string) (*nostr.Event, bool) {
	evt, ok := p.byID[id]
	return evt, ok
}

// Add returns false if an event with the same id is already pending.
func (p *Events) Add(evt *nostr.Event) bool {
	if _, ok := p.byID[evt.ID]; ok {
		return false
	}
	if p.byID == nil {
		p.byID = make(map[string]*nostr.Event)
	}
	p.byID[evt.ID] = evt
	p.order = append(p.order, evt)
	return true
}

func (p *Events) List() []*nostr.Event { return p.order }

func (p *Events) Len() int { return len(p.order) }

func (p *Events) Reset() {
	p.byID = nil
	p.order = nil
}
