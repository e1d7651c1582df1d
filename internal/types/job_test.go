package types

import "testing"

func TestJobStatusIsConcluded(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{JobStatusWaiting, false},
		{JobStatusAccepted, false},
		{JobStatusRefused, true},
		{JobStatusMakingDocuments, false},
		{JobStatusReadyToStakeOut, false},
		{JobStatusDataPassed, false},
		{JobStatusOngoing, false},
		{JobStatusFinished, true},
		{JobStatusClosed, true},
	}
	if len(tests) != len(AllJobStatuses) {
		t.Fatalf("cases: want=%d got=%d", len(AllJobStatuses), len(tests))
	}
	for _, tc := range tests {
		if got := tc.status.IsConcluded(); got != tc.want {
			t.Fatalf("%s.IsConcluded(): want=%v got=%v", tc.status, tc.want, got)
		}
	}
}

func TestJobStatusLabel(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   string
	}{
		{JobStatusWaiting, "waiting"},
		{JobStatusMakingDocuments, "making documents"},
		{JobStatusReadyToStakeOut, "ready to stake out"},
		{JobStatusDataPassed, "data passed"},
		{JobStatusOngoing, "ongoing"},
	}
	for _, tc := range tests {
		if got := tc.status.Label(); got != tc.want {
			t.Fatalf("%s.Label(): want=%q got=%q", tc.status, tc.want, got)
		}
	}
}

func TestJobKindLabel(t *testing.T) {
	tests := []struct {
		kind JobKind
		want string
	}{
		{JobKindStaking, "staking out"},
		{JobKindInventory, "as-built inventory"},
		{JobKindOther, "other"},
	}
	for _, tc := range tests {
		if got := tc.kind.Label(); got != tc.want {
			t.Fatalf("%s.Label(): want=%q got=%q", tc.kind, tc.want, got)
		}
	}
	if JobKind("bogus").Valid() {
		t.Fatal("bogus kind reported valid")
	}
}
