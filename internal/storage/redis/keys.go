package redis

// Key prefix for all panel data
const keyPrefix = "rconpanel"

// bansKey returns the Redis key for the ban list.
// Bans live in a single list so insertion order and duplicate records
// survive round-trips, matching the other backends.
func bansKey() string {
	return keyPrefix + ":bans"
}
