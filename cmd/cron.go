package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"inventory.GO/config"
	"inventory.GO/cron"
)

var cronJobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Run scheduled jobs in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cronJobName != "" {
			if job, ok := cron.Jobs()[cronJobName]; ok {
				job.Run()
				return nil
			}
			if job, ok := config.CronJobs[cronJobName]; ok {
				job.Job()
				return nil
			}
			return fmt.Errorf("unknown cron job %q", cronJobName)
		}

		c := cron.StartCron()
		defer c.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&cronJobName, "job", "j", "", "run a single job once and exit")
	Register(cronStartCmd)
}
