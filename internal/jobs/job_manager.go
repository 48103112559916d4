package jobs

import (
	"fmt"
)

// JobManager coordinates the background dispatch machinery: the poll job
// and the trigger it feeds.
type JobManager struct {
	readyOrderPollJob *ReadyOrderPollJob
	dispatchTrigger   *DispatchTrigger
}

func NewJobManager(poll *ReadyOrderPollJob, trigger *DispatchTrigger) *JobManager {
	return &JobManager{
		readyOrderPollJob: poll,
		dispatchTrigger:   trigger,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.readyOrderPollJob.Start(); err != nil {
		return fmt.Errorf("failed to start ready order poll job: %w", err)
	}
	return nil
}

// StopAll stops the poll first so no new attempts start, then drains the
// trigger.
func (jm *JobManager) StopAll() {
	jm.readyOrderPollJob.Stop()
	jm.dispatchTrigger.Stop()
}
