package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Fixed-window daily counter. INCR and set the expiry to the next local
// midnight on first use, so the key dies with the quota window.
const dailyCounterScript = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("EXPIREAT", KEYS[1], ARGV[1])
end
return count
`

type DailyCounter struct {
	client *redis.Client
	script *redis.Script
}

func NewDailyCounter(client *redis.Client) *DailyCounter {
	if client == nil {
		return nil
	}
	return &DailyCounter{
		client: client,
		script: redis.NewScript(dailyCounterScript),
	}
}

// Incr bumps the user's counter for the day containing now and returns
// the new value.
func (c *DailyCounter) Incr(ctx context.Context, telegramID int64, now time.Time) (int64, error) {
	if c == nil || c.client == nil {
		return 0, errors.New("daily counter not configured")
	}

	key := fmt.Sprintf("khuchi:quota:%d:%s", telegramID, now.Format("20060102"))
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)

	res, err := c.script.Run(ctx, c.client, []string{key}, midnight.Unix()).Int64()
	if err != nil {
		return 0, err
	}
	return res, nil
}
