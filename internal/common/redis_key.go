package common

// RedisKeyLeaderboard is the sorted set mapping user IDs to lifetime earned
// credits.
func RedisKeyLeaderboard() string {
	return "leaderboard:total_earned"
}
