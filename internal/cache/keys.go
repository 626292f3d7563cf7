package cache

import "fmt"

// Key prefix for all cached query snapshots
const keyPrefix = "soccer:q"

// Logical query keys. Each names a repository query whose serialized result
// may be cached; mutating handlers invalidate every key whose result could
// include the mutated entity.
const (
	KeyAllTeams         = "all_teams"
	KeyTeamsWithPlayers = "teams_with_players"
	KeyAllPlayers       = "all_players"
)

// queryKey returns the Redis key for a logical query name
func queryKey(name string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, name)
}
