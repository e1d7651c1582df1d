package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jobbook/jobbook-backend/internal/types"
)

func baseUpdateInput(job *types.Job) JobUpdateInput {
	return JobUpdateInput{
		ContractorID: job.ContractorID,
		Kind:         job.Kind,
		Description:  job.Description,
		KmFrom:       job.KmFrom,
		KmTo:         job.KmTo,
		Deadline:     job.Deadline,
		Comments:     job.Comments,
		Status:       job.Status,
	}
}

func TestCreateStartsWaitingAndNotifiesContractor(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	principal := env.createUser(t, types.RoleSiteEngineer, true)
	contractor := env.createUser(t, types.RoleSurveyor, true)
	trade := env.createTrade(t, "Railway", "RL")

	job, err := env.jobSvc.Create(context.Background(), JobCreateInput{
		PrincipalID:  principal.ID,
		ContractorID: contractor.ID,
		TradeID:      trade.ID,
		Kind:         types.JobKindStaking,
		Description:  "stake out the track axis",
		KmFrom:       10,
		Deadline:     mustDate(t, "2024-11-20"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.Status != types.JobStatusWaiting {
		t.Fatalf("status: want=%q got=%q", types.JobStatusWaiting, job.Status)
	}

	got := env.notificationsByEvent(t, types.EventJobCreated)
	if len(got) != 1 {
		t.Fatalf("job_created notifications: want=1 got=%d", len(got))
	}
	if got[0].RecipientID != contractor.ID {
		t.Fatalf("recipient: want contractor %s got=%s", contractor.ID, got[0].RecipientID)
	}
	if !strings.Contains(got[0].Content, "Railway") {
		t.Fatalf("content should name the trade, got=%q", got[0].Content)
	}
}

func TestCreateRejectsPastDeadline(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	principal := env.createUser(t, types.RoleSiteEngineer, true)
	contractor := env.createUser(t, types.RoleSurveyor, true)
	trade := env.createTrade(t, "Railway", "RL")

	_, err := env.jobSvc.Create(context.Background(), JobCreateInput{
		PrincipalID:  principal.ID,
		ContractorID: contractor.ID,
		TradeID:      trade.ID,
		Kind:         types.JobKindStaking,
		Description:  "stake out the track axis",
		Deadline:     mustDate(t, "2024-11-04"),
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got=%v", err)
	}
	if vErr.Field != "deadline" {
		t.Fatalf("field: want=deadline got=%q", vErr.Field)
	}
	if len(env.notifications(t)) != 0 {
		t.Fatal("a rejected create must not enqueue anything")
	}
}

func TestUpdateWithoutChangesSendsNothing(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	principal := env.createUser(t, types.RoleSiteEngineer, true)
	contractor := env.createUser(t, types.RoleSurveyor, true)
	trade := env.createTrade(t, "Railway", "RL")
	job := env.createJob(t, principal, contractor, trade, types.JobStatusOngoing, mustDate(t, "2024-11-20"), env.now)

	if _, err := env.jobSvc.Update(context.Background(), job.ID, baseUpdateInput(job)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := env.notifications(t); len(got) != 0 {
		t.Fatalf("notifications after no-op update: want=0 got=%d", len(got))
	}
}

func TestUpdateStatusChangeNotifiesPrincipal(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	principal := env.createUser(t, types.RoleSiteEngineer, true)
	contractor := env.createUser(t, types.RoleSurveyor, true)
	trade := env.createTrade(t, "Railway", "RL")
	job := env.createJob(t, principal, contractor, trade, types.JobStatusWaiting, mustDate(t, "2024-11-20"), env.now)

	input := baseUpdateInput(job)
	input.Status = types.JobStatusReadyToStakeOut
	if _, err := env.jobSvc.Update(context.Background(), job.ID, input); err != nil {
		t.Fatalf("Update: %v", err)
	}

	all := env.notifications(t)
	if len(all) != 1 {
		t.Fatalf("notifications: want=1 got=%d", len(all))
	}
	n := all[0]
	if n.Event != types.EventJobStatusChanged {
		t.Fatalf("event: want=%q got=%q", types.EventJobStatusChanged, n.Event)
	}
	if n.RecipientID != principal.ID {
		t.Fatalf("recipient: want principal %s got=%s", principal.ID, n.RecipientID)
	}
	if !strings.Contains(n.Content, "Ready to stake out") {
		t.Fatalf("content should carry the capitalized status label, got=%q", n.Content)
	}
}

func TestUpdateContractorChangeNotifiesNewContractor(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	principal := env.createUser(t, types.RoleSiteEngineer, true)
	contractor := env.createUser(t, types.RoleSurveyor, true)
	replacement := env.createUser(t, types.RoleSubcontractor, true)
	trade := env.createTrade(t, "Railway", "RL")
	job := env.createJob(t, principal, contractor, trade, types.JobStatusOngoing, mustDate(t, "2024-11-20"), env.now)

	input := baseUpdateInput(job)
	input.ContractorID = replacement.ID
	if _, err := env.jobSvc.Update(context.Background(), job.ID, input); err != nil {
		t.Fatalf("Update: %v", err)
	}

	all := env.notifications(t)
	if len(all) != 1 {
		t.Fatalf("notifications: want=1 got=%d", len(all))
	}
	if all[0].Event != types.EventJobContractorChanged {
		t.Fatalf("event: want=%q got=%q", types.EventJobContractorChanged, all[0].Event)
	}
	if all[0].RecipientID != replacement.ID {
		t.Fatalf("recipient: want new contractor %s got=%s", replacement.ID, all[0].RecipientID)
	}
}

func TestUpdateStatusAndContractorSendsBoth(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	principal := env.createUser(t, types.RoleSiteEngineer, true)
	contractor := env.createUser(t, types.RoleSurveyor, true)
	replacement := env.createUser(t, types.RoleSubcontractor, true)
	trade := env.createTrade(t, "Railway", "RL")
	job := env.createJob(t, principal, contractor, trade, types.JobStatusWaiting, mustDate(t, "2024-11-20"), env.now)

	input := baseUpdateInput(job)
	input.Status = types.JobStatusAccepted
	input.ContractorID = replacement.ID
	if _, err := env.jobSvc.Update(context.Background(), job.ID, input); err != nil {
		t.Fatalf("Update: %v", err)
	}

	statusNs := env.notificationsByEvent(t, types.EventJobStatusChanged)
	contractorNs := env.notificationsByEvent(t, types.EventJobContractorChanged)
	if len(statusNs) != 1 || len(contractorNs) != 1 {
		t.Fatalf("want one of each: status=%d contractor=%d", len(statusNs), len(contractorNs))
	}
	if statusNs[0].RecipientID != principal.ID {
		t.Fatalf("status recipient: want principal %s got=%s", principal.ID, statusNs[0].RecipientID)
	}
	if contractorNs[0].RecipientID != replacement.ID {
		t.Fatalf("contractor recipient: want new contractor %s got=%s", replacement.ID, contractorNs[0].RecipientID)
	}
}

func TestUpdateAllowsPastDeadline(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	principal := env.createUser(t, types.RoleSiteEngineer, true)
	contractor := env.createUser(t, types.RoleSurveyor, true)
	trade := env.createTrade(t, "Railway", "RL")
	job := env.createJob(t, principal, contractor, trade, types.JobStatusOngoing, mustDate(t, "2024-11-20"), env.now)

	input := baseUpdateInput(job)
	input.Deadline = mustDate(t, "2024-10-01")
	updated, err := env.jobSvc.Update(context.Background(), job.ID, input)
	if err != nil {
		t.Fatalf("Update with past deadline: %v", err)
	}
	if !updated.Deadline.Equal(mustDate(t, "2024-10-01")) {
		t.Fatalf("deadline: want=2024-10-01 got=%s", updated.Deadline)
	}
}
