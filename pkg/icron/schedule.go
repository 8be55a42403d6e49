package icron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// NextTrigger returns the next fire time of a standard 5-field cron
// expression (descriptors like @daily allowed) after refTime.
func NextTrigger(cronExpr string, refTime time.Time) (time.Time, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom |
		cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule.Next(refTime), nil
}
