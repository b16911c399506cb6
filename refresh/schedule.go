package refresh

import (
	"github.com/robfig/cron"
	"hermannm.dev/wrap"
)

// Schedule runs the job on the given cron spec, such as "@every 10m" or "0 0 6 * * *" (with a
// leading seconds field). The returned function stops the schedule, and does not wait for a
// running job to finish.
func Schedule(spec string, job func()) (stop func(), err error) {
	scheduler := cron.New()

	if err := scheduler.AddFunc(spec, job); err != nil {
		return nil, wrap.Errorf(err, "invalid refresh schedule '%s'", spec)
	}

	scheduler.Start()
	return scheduler.Stop, nil
}
