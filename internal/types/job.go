package types

import (
	"time"

	"github.com/google/uuid"
)

type JobKind string

const (
	JobKindStaking   JobKind = "staking"
	JobKindInventory JobKind = "inventory"
	JobKindOther     JobKind = "other"
)

// AllJobKinds is the canonical ordering used by the monthly report.
var AllJobKinds = []JobKind{JobKindStaking, JobKindInventory, JobKindOther}

func (k JobKind) Valid() bool {
	switch k {
	case JobKindStaking, JobKindInventory, JobKindOther:
		return true
	}
	return false
}

func (k JobKind) Label() string {
	switch k {
	case JobKindStaking:
		return "staking out"
	case JobKindInventory:
		return "as-built inventory"
	case JobKindOther:
		return "other"
	}
	return string(k)
}

type JobStatus string

const (
	JobStatusWaiting         JobStatus = "waiting"
	JobStatusAccepted        JobStatus = "accepted"
	JobStatusRefused         JobStatus = "refused"
	JobStatusMakingDocuments JobStatus = "making_documents"
	JobStatusReadyToStakeOut JobStatus = "ready_to_stake_out"
	JobStatusDataPassed      JobStatus = "data_passed"
	JobStatusOngoing         JobStatus = "ongoing"
	JobStatusFinished        JobStatus = "finished"
	JobStatusClosed          JobStatus = "closed"
)

// AllJobStatuses is the canonical lifecycle ordering, used by the monthly
// report aggregate rows.
var AllJobStatuses = []JobStatus{
	JobStatusWaiting,
	JobStatusAccepted,
	JobStatusRefused,
	JobStatusMakingDocuments,
	JobStatusReadyToStakeOut,
	JobStatusDataPassed,
	JobStatusOngoing,
	JobStatusFinished,
	JobStatusClosed,
}

// ConcludedStatuses gates the deadline sweeps: a job in any of these
// statuses never triggers another deadline notification.
var ConcludedStatuses = []JobStatus{
	JobStatusRefused,
	JobStatusFinished,
	JobStatusClosed,
}

func (s JobStatus) Valid() bool {
	for _, known := range AllJobStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s JobStatus) IsConcluded() bool {
	for _, concluded := range ConcludedStatuses {
		if s == concluded {
			return true
		}
	}
	return false
}

func (s JobStatus) Label() string {
	switch s {
	case JobStatusMakingDocuments:
		return "making documents"
	case JobStatusReadyToStakeOut:
		return "ready to stake out"
	case JobStatusDataPassed:
		return "data passed"
	default:
		return string(s)
	}
}

// InProgressStatuses backs the "in progress" filter of the my-jobs listing.
var InProgressStatuses = []JobStatus{
	JobStatusMakingDocuments,
	JobStatusReadyToStakeOut,
	JobStatusDataPassed,
	JobStatusOngoing,
}

type Job struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PrincipalID  uuid.UUID `gorm:"type:uuid;not null;index;column:principal_id" json:"principal_id"`
	Principal    *User     `gorm:"foreignKey:PrincipalID;references:ID" json:"principal,omitempty"`
	ContractorID uuid.UUID `gorm:"type:uuid;not null;index;column:contractor_id" json:"contractor_id"`
	Contractor   *User     `gorm:"foreignKey:ContractorID;references:ID" json:"contractor,omitempty"`
	Kind         JobKind   `gorm:"type:varchar(16);not null;column:kind" json:"kind"`
	TradeID      uuid.UUID `gorm:"type:uuid;not null;column:trade_id" json:"trade_id"`
	Trade        *Trade    `gorm:"foreignKey:TradeID;references:ID" json:"trade,omitempty"`
	Description  string    `gorm:"type:varchar(1024);not null;column:description" json:"description"`
	KmFrom       float64   `gorm:"type:decimal(7,3);not null;default:0;column:km_from" json:"km_from"`
	KmTo         *float64  `gorm:"type:decimal(7,3);column:km_to" json:"km_to,omitempty"`
	Deadline     time.Time `gorm:"type:date;not null;column:deadline" json:"deadline"`
	Comments     string    `gorm:"type:varchar(512);column:comments" json:"comments"`
	Status       JobStatus `gorm:"type:varchar(32);not null;default:'waiting';column:status" json:"status"`
	Created      time.Time `gorm:"not null;column:created" json:"created"`
}

func (Job) TableName() string { return "job" }
