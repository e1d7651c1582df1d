package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type StaffRole string

const (
	RoleContractDirector StaffRole = "contract_director"
	RoleContractManager  StaffRole = "contract_manager"
	RoleClerkOfTheWorks  StaffRole = "clerk_of_the_works"
	RoleSiteManager      StaffRole = "site_manager"
	RoleSiteEngineer     StaffRole = "site_engineer"
	RoleSubcontractor    StaffRole = "subcontractor"
	RoleSurveyor         StaffRole = "surveyor"
)

var AllStaffRoles = []StaffRole{
	RoleContractDirector,
	RoleContractManager,
	RoleClerkOfTheWorks,
	RoleSiteManager,
	RoleSiteEngineer,
	RoleSubcontractor,
	RoleSurveyor,
}

// GeneralContractorRoles are the client-side management roles; they receive
// the monthly status report.
var GeneralContractorRoles = []StaffRole{
	RoleContractDirector,
	RoleContractManager,
	RoleClerkOfTheWorks,
	RoleSiteManager,
	RoleSiteEngineer,
}

func (r StaffRole) Valid() bool {
	for _, known := range AllStaffRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (r StaffRole) IsGeneralContractor() bool {
	for _, m := range GeneralContractorRoles {
		if r == m {
			return true
		}
	}
	return false
}

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string     `gorm:"not null;column:password" json:"-"`
	FirstName string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string     `gorm:"not null;column:last_name" json:"last_name"`
	Phone     string     `gorm:"column:phone" json:"phone"`
	Role      StaffRole  `gorm:"type:varchar(32);not null;column:role" json:"role"`
	BirthDate *time.Time `gorm:"type:date;column:birth_date" json:"birth_date,omitempty"`
	IsActive  bool       `gorm:"not null;default:false;column:is_active" json:"is_active"`
	IsAdmin   bool       `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	CreatedAt time.Time  `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
