package config

// CronJob pairs a cron schedule with a job function.
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs maps job names to statically configured jobs. Packages under
// cron/jobs register themselves through cron.Register instead, so they can
// depend on this package without a cycle.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
