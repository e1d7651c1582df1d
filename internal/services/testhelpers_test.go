package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appdb "github.com/jobbook/jobbook-backend/internal/db"
	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := appdb.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// testEnv bundles the fully wired service stack over an in-memory database
// with a fixed clock.
type testEnv struct {
	db     *gorm.DB
	users  repos.UserRepo
	trades repos.TradeRepo
	jobs   repos.JobRepo
	files  repos.JobFileRepo
	outbox repos.NotificationRepo

	notify   NotificationService
	format   *Formatter
	jobSvc   JobService
	deadline DeadlineService
	report   ReportService
	auth     AuthService
	userSvc  UserService

	now time.Time
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger()

	env := &testEnv{
		db:     gdb,
		users:  repos.NewUserRepo(gdb, log),
		trades: repos.NewTradeRepo(gdb, log),
		jobs:   repos.NewJobRepo(gdb, log),
		files:  repos.NewJobFileRepo(gdb, log),
		outbox: repos.NewNotificationRepo(gdb, log),
		now:    now,
	}
	clock := func() time.Time { return env.now }

	env.format = NewFormatter("http://jobbook.test")
	env.notify = NewNotificationService(log, env.outbox)
	env.jobSvc = NewJobService(gdb, log, env.jobs, env.files, env.users, env.trades, env.notify, env.format, t.TempDir(), clock)
	env.deadline = NewDeadlineService(log, env.jobs, env.notify, env.format, clock)
	env.report = NewReportService(log, env.jobs, env.files, env.users, env.notify, env.format, t.TempDir(), clock)
	env.auth = NewAuthService(log, env.users, env.notify, env.format, "test-secret", time.Hour, clock)
	env.userSvc = NewUserService(log, env.users, env.notify, env.format)
	return env
}

func (e *testEnv) createUser(t *testing.T, role types.StaffRole, active bool) *types.User {
	t.Helper()
	user := &types.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@jobbook.test",
		Password:  "x",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  active,
		CreatedAt: e.now,
		UpdatedAt: e.now,
	}
	if _, err := e.users.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createAdmin(t *testing.T) *types.User {
	t.Helper()
	admin := e.createUser(t, types.RoleContractDirector, true)
	if err := e.db.Model(&types.User{}).Where("id = ?", admin.ID).Update("is_admin", true).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	admin.IsAdmin = true
	return admin
}

func (e *testEnv) createTrade(t *testing.T, name, abbreviation string) *types.Trade {
	t.Helper()
	trade := &types.Trade{ID: uuid.New(), Name: name, Abbreviation: abbreviation}
	if _, err := e.trades.Create(context.Background(), nil, []*types.Trade{trade}); err != nil {
		t.Fatalf("create trade: %v", err)
	}
	return trade
}

func (e *testEnv) createJob(t *testing.T, principal, contractor *types.User, trade *types.Trade, status types.JobStatus, deadline, created time.Time) *types.Job {
	t.Helper()
	job := &types.Job{
		ID:           uuid.New(),
		PrincipalID:  principal.ID,
		ContractorID: contractor.ID,
		Kind:         types.JobKindStaking,
		TradeID:      trade.ID,
		Description:  "track axis staking",
		KmFrom:       12.5,
		Deadline:     deadline,
		Status:       status,
		Created:      created,
	}
	if _, err := e.jobs.Create(context.Background(), nil, job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func (e *testEnv) notifications(t *testing.T) []*types.Notification {
	t.Helper()
	var out []*types.Notification
	if err := e.db.Order("created_at ASC").Find(&out).Error; err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	return out
}

func (e *testEnv) notificationsByEvent(t *testing.T, event types.NotificationEvent) []*types.Notification {
	t.Helper()
	var out []*types.Notification
	if err := e.db.Where("event = ?", event).Order("created_at ASC").Find(&out).Error; err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	return out
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}
