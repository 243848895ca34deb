package cache

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Per-entity TTLs. Volatile lists expire in minutes, slow-moving metadata
// keeps for a day.
const (
	TTLUserInterests  = 30 * time.Minute
	TTLEventQuery     = time.Hour
	TTLTripList       = 15 * time.Minute
	TTLTripInProgress = 30 * time.Minute
	TTLArtistMetadata = 24 * time.Hour
	TTLTravelQuery    = 6 * time.Hour
)

func KeyUserInterests(userID uint) string {
	return fmt.Sprintf("interests:user:%d", userID)
}

func KeyEventQuery(queryHash string) string {
	return fmt.Sprintf("events:query:%s", queryHash)
}

func KeyTripList(userID uint) string {
	return fmt.Sprintf("triplist:user:%d", userID)
}

func KeyTripInProgress(userID uint) string {
	return fmt.Sprintf("tripprogress:user:%d", userID)
}

func KeyArtistMetadata(artist string) string {
	return fmt.Sprintf("artistmeta:%s", HashQuery(artist))
}

// KeyTravelQuery identifies one provider search, e.g. kind "flight" with
// query "LAX|JFK|2026-09-01|2026-09-03".
func KeyTravelQuery(kind, query string) string {
	return fmt.Sprintf("travel:%s:%s", kind, HashQuery(query))
}

func PatternUser(userID uint) string {
	return fmt.Sprintf("*:user:%d", userID)
}

// HashQuery collapses an arbitrary query string into a short stable key
// fragment.
func HashQuery(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum64())
}
