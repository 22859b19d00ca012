package service

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/repository"
	"github.com/miv-platform/miv/internal/testutil"
)

// recordingQueue captures enqueued venture IDs for assertions.
type recordingQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *recordingQueue) Enqueue(ventureID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, ventureID)
	return true
}

func (q *recordingQueue) enqueued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ids...)
}

type harness struct {
	db         *sql.DB
	uow        db.UnitOfWork
	ventures   VentureService
	metrics    MetricService
	analytics  AnalyticsService
	queue      *recordingQueue
	users      repository.UserRepo
	activities repository.ActivityRepo
	metricRepo repository.MetricRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	ventureRepo := repository.NewSQLiteVentureRepo(database)
	metricRepo := repository.NewSQLiteMetricRepo(database)
	docRepo := repository.NewSQLiteDocumentRepo(database)
	capRepo := repository.NewSQLiteCapitalActivityRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	analyticsRepo := repository.NewSQLiteAnalyticsRepo(database)

	queue := &recordingQueue{}
	return &harness{
		db:         database,
		uow:        uow,
		ventures:   NewVentureService(uow, ventureRepo, docRepo, capRepo, activityRepo),
		metrics:    NewMetricService(uow, metricRepo, queue),
		analytics:  NewAnalyticsService(analyticsRepo, activityRepo),
		queue:      queue,
		users:      repository.NewSQLiteUserRepo(database),
		activities: activityRepo,
		metricRepo: metricRepo,
	}
}
