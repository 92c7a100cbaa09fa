package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultLowStockSchedule runs the report at the top of every hour.
const DefaultLowStockSchedule = "0 0 * * * *"

type lowStockReader interface {
	Handle(ctx context.Context, query queries.GetLowStockProductsQuery) ([]queries.LowStockProduct, error)
}

// LowStockReportJob logs active products whose stock fell to or below their
// minimum. It only reads; restocking stays a manual adjustment.
type LowStockReportJob struct {
	reader   lowStockReader
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLowStockReportJob takes a six-field cron schedule (seconds first). An
// empty schedule means DefaultLowStockSchedule.
func NewLowStockReportJob(reader lowStockReader, schedule string, logger *slog.Logger) *LowStockReportJob {
	if schedule == "" {
		schedule = DefaultLowStockSchedule
	}
	return &LowStockReportJob{
		reader:   reader,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "low_stock_report_job"),
	}
}

func (j *LowStockReportJob) Name() string {
	return "low stock report"
}

func (j *LowStockReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Low stock report failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock report job started", "schedule", j.schedule)
	return nil
}

func (j *LowStockReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Low stock report job stopped")
}

// Run produces one report and returns the number of products listed.
func (j *LowStockReportJob) Run(ctx context.Context) (int, error) {
	products, err := j.reader.Handle(ctx, queries.NewGetLowStockProductsQuery())
	if err != nil {
		return 0, err
	}

	for _, p := range products {
		j.logger.WarnContext(ctx, "Product stock is low",
			"product_id", p.ID.String(),
			"code", p.Code,
			"stock", p.Stock,
			"stock_minimum", p.StockMinimum,
			"shortfall", p.Shortfall(),
		)
	}
	j.logger.InfoContext(ctx, "Low stock report finished", "products", len(products))
	return len(products), nil
}
