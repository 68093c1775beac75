package cron_test

import (
	"testing"

	"inventory.GO/core/registry"
	"inventory.GO/cron"
	_ "inventory.GO/cron/jobs"
)

func TestRegistry_NightlyReportJob(t *testing.T) {
	j, ok := cron.Jobs()["inventoryreportjob"]
	if !ok {
		t.Fatal("inventoryreportjob not registered")
	}
	if j.Schedule != "0 2 * * *" {
		t.Errorf("Schedule = %q, want 0 2 * * *", j.Schedule)
	}
	if j.Run == nil {
		t.Error("Run is nil")
	}
}

func TestRegistry_RegisterAndRun(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)

	ran := false
	cron.Register("reportwarmup", "@every 1h", func(args ...string) {
		ran = true
	})
	defer cron.Unregister("reportwarmup")

	j, ok := cron.Jobs()["reportwarmup"]
	if !ok {
		t.Fatal("reportwarmup not in Jobs()")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want @every 1h", j.Schedule)
	}
	j.Run()
	if !ran {
		t.Error("Run did not execute")
	}
}

func TestRegistry_DuplicateJobPanics(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)

	cron.Register("stocksync", "@hourly", func(...string) {})
	defer cron.Unregister("stocksync")
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	cron.Register("stocksync", "@daily", func(...string) {})
}
