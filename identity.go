package openrealm

import "strings"

// Hash is a content-addressed identifier, normally the lowercase hex
// SHA-1/IPFS CID of the asset bytes. Hashes beginning with "b64-" are
// base64 payloads resolved locally without a network round trip.
type Hash string

// IsInline reports whether h is a "b64-" inline payload rather than a
// server-resolved hash.
func (h Hash) IsInline() bool { return strings.HasPrefix(string(h), "b64-") }

// Urn identifies a wearable, emote, or other catalog item independent of
// any one realm's content server, e.g.
// "urn:decentraland:matic:collections-v2:0xabc...:0".
type Urn string

// UrnState is the resolution state of a [Urn] or [Hash] pointer, tracked
// so repeated lookups don't re-issue in-flight or recently-failed
// requests.
type UrnState int

const (
	// StateUnknown means no resolution has been attempted yet.
	StateUnknown UrnState = iota
	// StateResolving means a fetch is in flight.
	StateResolving
	// StateExists means the pointer resolved and content is cached locally.
	StateExists
	// StateMissing means the pointer was looked up and does not exist
	// (a terminal state recorded to avoid re-requesting it).
	StateMissing
)

func (s UrnState) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateExists:
		return "exists"
	case StateMissing:
		return "missing"
	default:
		return "unknown"
	}
}
