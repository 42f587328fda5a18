package main

import (
	"context"
	"log"
	"time"

	"vibeswipe/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
)

type SweepJob struct {
	sweeper *services.ServiceSweeper
	spec    string
}

func NewSweepJob(container *do.Injector) (*SweepJob, error) {
	sweeper, err := do.Invoke[*services.ServiceSweeper](container)
	if err != nil {
		return nil, err
	}

	vs := do.MustInvokeNamed[map[string]string](container, "envs")
	spec := vs[services.ENV_SWEEP_CRON]
	if spec == "" {
		spec = services.DEFAULT_SWEEP_CRON
	}

	return &SweepJob{sweeper: sweeper, spec: spec}, nil
}

func (j *SweepJob) Start(cronRunner *cron.Cron) error {
	_, err := cronRunner.AddFunc(j.spec, j.runScheduledTask)
	if err != nil {
		return err
	}

	log.Println("Sweep cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", j.spec)
	// score anything already overdue before the first tick
	j.runScheduledTask()
	return nil
}

func (j *SweepJob) runScheduledTask() {
	ctx := context.Background()

	outcomes, err := j.sweeper.RunOnce(ctx)
	if err != nil {
		log.Println("sweep failed:", err)
		return
	}

	scored := 0
	for _, outcome := range outcomes {
		if outcome.Scored {
			scored++
		}
	}

	if len(outcomes) > 0 {
		log.Printf("sweep done: %d due, %d scored", len(outcomes), scored)
	}
}
