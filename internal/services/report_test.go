package services

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jobbook/jobbook-backend/internal/types"
)

func (e *testEnv) createJobWithKind(t *testing.T, principal, contractor *types.User, trade *types.Trade, kind types.JobKind, status types.JobStatus, created time.Time) *types.Job {
	t.Helper()
	job := &types.Job{
		ID:           uuid.New(),
		PrincipalID:  principal.ID,
		ContractorID: contractor.ID,
		Kind:         kind,
		TradeID:      trade.ID,
		Description:  "monthly report fixture",
		Deadline:     created.AddDate(0, 1, 0),
		Status:       status,
		Created:      created,
	}
	if _, err := e.jobs.Create(context.Background(), nil, job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func TestMonthlyStatusReportAggregatesPreviousMonth(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-12-03"))
	principal := env.createUser(t, types.RoleSiteEngineer, true)
	contractor := env.createUser(t, types.RoleSurveyor, true)
	trade := env.createTrade(t, "Railway", "RL")

	manager := env.createUser(t, types.RoleContractManager, true)
	env.createUser(t, types.RoleContractDirector, false) // inactive: no report
	// contractor and principal are surveyor/engineer-side; only management
	// roles receive the report, and the engineer is one of them.

	nov := func(day int) time.Time { return time.Date(2024, time.November, day, 10, 0, 0, 0, time.UTC) }

	withFile := env.createJobWithKind(t, principal, contractor, trade, types.JobKindStaking, types.JobStatusWaiting, nov(2))
	env.createJobWithKind(t, principal, contractor, trade, types.JobKindInventory, types.JobStatusWaiting, nov(5))
	env.createJobWithKind(t, principal, contractor, trade, types.JobKindInventory, types.JobStatusAccepted, nov(8))
	env.createJobWithKind(t, principal, contractor, trade, types.JobKindOther, types.JobStatusMakingDocuments, nov(12))
	env.createJobWithKind(t, principal, contractor, trade, types.JobKindStaking, types.JobStatusFinished, nov(28))

	// Outside the period: ignored.
	env.createJobWithKind(t, principal, contractor, trade, types.JobKindStaking, types.JobStatusWaiting, time.Date(2024, time.October, 31, 23, 0, 0, 0, time.UTC))
	env.createJobWithKind(t, principal, contractor, trade, types.JobKindOther, types.JobStatusOngoing, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))

	file := &types.JobFile{
		ID:           uuid.New(),
		JobID:        withFile.ID,
		OriginalName: "sketch.pdf",
		SizeBytes:    3,
		StorageKey:   withFile.ID.String() + "_sketch.pdf",
		CreatedAt:    env.now,
	}
	if _, err := env.files.Create(context.Background(), nil, file); err != nil {
		t.Fatalf("create job file: %v", err)
	}

	filePath, notified, err := env.report.MonthlyStatusReport(context.Background())
	if err != nil {
		t.Fatalf("MonthlyStatusReport: %v", err)
	}
	if want := "2024_11_jobs_monthly_status.csv"; filepath.Base(filePath) != want {
		t.Fatalf("file name: want=%q got=%q", want, filepath.Base(filePath))
	}

	f, err := os.Open(filePath)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse report: %v", err)
	}

	// header + 5 jobs + count + 2 status rows + 2 kind rows
	if len(rows) != 11 {
		t.Fatalf("rows: want=11 got=%d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], reportFieldNames) {
		t.Fatalf("header: want=%v got=%v", reportFieldNames, rows[0])
	}
	if !reflect.DeepEqual(rows[6], []string{"Number of jobs:", "5"}) {
		t.Fatalf("count row: got=%v", rows[6])
	}
	wantStatusCounts := []string{"2", "1", "0", "1", "0", "0", "0", "1", "0"}
	if !reflect.DeepEqual(rows[8], wantStatusCounts) {
		t.Fatalf("status counts: want=%v got=%v", wantStatusCounts, rows[8])
	}
	wantKindCounts := []string{"2", "2", "1"}
	if !reflect.DeepEqual(rows[10], wantKindCounts) {
		t.Fatalf("kind counts: want=%v got=%v", wantKindCounts, rows[10])
	}

	// Per-job rows keep creation order; the first is the one with a file.
	if rows[1][0] != withFile.ID.String() {
		t.Fatalf("first job row: want id %s got=%s", withFile.ID, rows[1][0])
	}
	if rows[1][1] != "02.11.2024" {
		t.Fatalf("date format: want=02.11.2024 got=%s", rows[1][1])
	}
	if rows[1][4] != "true" {
		t.Fatalf("has_attachments for job with file: want=true got=%s", rows[1][4])
	}
	if rows[2][4] != "false" {
		t.Fatalf("has_attachments for job without file: want=false got=%s", rows[2][4])
	}

	// principal (site_engineer) and manager are active general-contractor
	// staff; the surveyor and the inactive director get nothing.
	if notified != 2 {
		t.Fatalf("notified: want=2 got=%d", notified)
	}
	got := env.notificationsByEvent(t, types.EventMonthlyStatusReport)
	if len(got) != 2 {
		t.Fatalf("notifications: want=2 got=%d", len(got))
	}
	recipients := map[uuid.UUID]bool{}
	for _, n := range got {
		recipients[n.RecipientID] = true
		if n.AttachmentPath != filePath {
			t.Fatalf("attachment path: want=%q got=%q", filePath, n.AttachmentPath)
		}
	}
	if !recipients[manager.ID] || !recipients[principal.ID] {
		t.Fatalf("recipients: want manager and engineer, got=%v", recipients)
	}
}
