package nostrlikes

import (
	"github.com/nbd-wtf/go-nostr"
)

// ParentEventID returns the id from the first "e" tag of evt, the event a reaction refers to.
func ParentEventID(evt *nostr.Event) (string, bool) {
	for _, tag := range evt.Tags {
		if len(tag) >= 2 && tag[0] == "e" && nostr.IsValid32ByteHex(tag[1]) {
			return tag[1], true
		}
	}
	return "", false
}

func reactionsFilter(pk PublicKey, limit int) nostr.Filter {
	return nostr.Filter{
		Kinds:   []int{nostr.KindReaction},
		Authors: []string{pk.Hex()},
		Limit:   limit,
	}
}

func idFilter(id string) nostr.Filter {
	return nostr.Filter{IDs: []string{id}, Limit: 1}
}
