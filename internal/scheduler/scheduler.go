package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/integrations/keyrate"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/service"
)

// runTimeout bounds a single run of the invoice job
const runTimeout = 10 * time.Minute

// InvoiceService is the part of the service the job drives
type InvoiceService interface {
	CloseExpiredInvoices(ctx context.Context, today billing.Date) ([]service.InvoiceNotice, error)
	UpcomingDueInvoices(ctx context.Context, today billing.Date, days int) ([]service.InvoiceNotice, error)
	ChargeLateInterest(ctx context.Context, today billing.Date, annualRate decimal.Decimal) ([]service.InvoiceNotice, error)
}

// Notifier delivers invoice emails
type Notifier interface {
	SendInvoiceClosed(card *models.Card, inv *models.Invoice) error
	SendDueReminder(card *models.Card, inv *models.Invoice) error
	SendOverdueNotice(card *models.Card, inv *models.Invoice) error
}

// RateProvider returns the annual rate late interest is charged at
type RateProvider interface {
	KeyRate(ctx context.Context, today billing.Date) (*keyrate.Rate, error)
}

// Report counts what one run did
type Report struct {
	Closed   int
	Reminded int
	Charged  int
}

// InvoiceJob closes expired invoices, reminds card holders of upcoming due
// dates and charges late interest on overdue invoices.
type InvoiceJob struct {
	svc          InvoiceService
	notifier     Notifier
	rates        RateProvider
	reminderDays int
	log          *logrus.Logger
}

// NewInvoiceJob initializes the invoice job
func NewInvoiceJob(svc InvoiceService, notifier Notifier, rates RateProvider, reminderDays int, log *logrus.Logger) *InvoiceJob {
	return &InvoiceJob{
		svc:          svc,
		notifier:     notifier,
		rates:        rates,
		reminderDays: reminderDays,
		log:          log,
	}
}

// RunOnce performs every step for the given day. A failing step is logged
// and the remaining steps still run.
func (j *InvoiceJob) RunOnce(ctx context.Context, today billing.Date) Report {
	var report Report
	log := j.log.WithField("today", today.String())

	closed, err := j.svc.CloseExpiredInvoices(ctx, today)
	if err != nil {
		log.WithError(err).Error("Failed to close some invoices")
	}
	for _, n := range closed {
		report.Closed++
		if err := j.notifier.SendInvoiceClosed(n.Card, n.Invoice); err != nil {
			log.WithError(err).WithField("invoice_id", n.Invoice.ID).Warn("Failed to send invoice closed email")
		}
	}

	upcoming, err := j.svc.UpcomingDueInvoices(ctx, today, j.reminderDays)
	if err != nil {
		log.WithError(err).Error("Failed to list upcoming invoices")
	}
	for _, n := range upcoming {
		if err := j.notifier.SendDueReminder(n.Card, n.Invoice); err != nil {
			log.WithError(err).WithField("invoice_id", n.Invoice.ID).Warn("Failed to send due reminder")
			continue
		}
		report.Reminded++
	}

	rate, err := j.rates.KeyRate(ctx, today)
	if err != nil {
		log.WithError(err).Warn("Key rate unavailable, skipping late interest")
	} else {
		charged, err := j.svc.ChargeLateInterest(ctx, today, rate.Total)
		if err != nil {
			log.WithError(err).Error("Failed to charge late interest on some invoices")
		}
		for _, n := range charged {
			report.Charged++
			if err := j.notifier.SendOverdueNotice(n.Card, n.Invoice); err != nil {
				log.WithError(err).WithField("invoice_id", n.Invoice.ID).Warn("Failed to send overdue notice")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"closed":   report.Closed,
		"reminded": report.Reminded,
		"charged":  report.Charged,
	}).Info("Invoice job finished")
	return report
}

// Scheduler runs the invoice job on a cron schedule
type Scheduler struct {
	cron *cron.Cron
	job  *InvoiceJob
	loc  *time.Location
	now  func() time.Time
}

// New schedules job with a standard five field cron spec evaluated in loc
func New(spec string, loc *time.Location, job *InvoiceJob, log *logrus.Logger) (*Scheduler, error) {
	logger := cron.PrintfLogger(log)
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		job: job,
		loc: loc,
		now: time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	s.job.RunOnce(ctx, billing.DateOf(s.now().In(s.loc)))
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running one to finish or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
