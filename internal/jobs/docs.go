// Package jobs runs the background side of dispatch.
//
// # Components
//
//  1. DispatchTrigger - implements commands.DispatchRequester. Each request
//     runs AssignBestCourier in its own goroutine; requests for an order that
//     is already being dispatched are dropped.
//  2. ReadyOrderPollJob - a github.com/robfig/cron/v3 job (every 10 seconds by
//     default) that feeds ready, unassigned orders to the trigger.
//
// The push path (Postgres LISTEN order_ready) lives in
// internal/adapters/in/listener and feeds the same trigger.
//
// # Usage
//
//	trigger := jobs.NewDispatchTrigger(assignBestHandler, logger)
//	poll := jobs.NewReadyOrderPollJob(uowFactory, trigger, "", 0, 5*time.Second, logger)
//	jobManager := jobs.NewJobManager(poll, trigger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Order state conflicts (cancelled or already dispatched) are expected and
//   logged at debug level
// - Storage errors are logged; the next poll retries the order
package jobs
