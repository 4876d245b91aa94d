package common

import "fmt"

const RedisLockPrefix = "lock:"

// RedisKeyGamification is the per-user lock key of every operation which
// writes cycles, daily points, levels or medals of the user.
func RedisKeyGamification(userID string) string {
	return fmt.Sprintf("gamification:%s", userID)
}
