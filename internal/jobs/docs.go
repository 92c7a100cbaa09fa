// Package jobs runs scheduled background tasks with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// LowStockReportJob logs every active product at or below its stock minimum.
// The schedule comes from LOW_STOCK_CRON and uses six fields, seconds first.
//
// # Usage
//
//	report := jobs.NewLowStockReportJob(lowStockHandler, cfg.LowStockCron, logger)
//	manager := jobs.NewJobManager(report)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// A failing run is logged and retried at the next tick. A job whose schedule
// does not parse fails StartAll, which stops the jobs started before it.
package jobs
