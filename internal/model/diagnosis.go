package model

import "time"

type DiagnosisSeverity string

const (
	SeverityMild     DiagnosisSeverity = "mild"
	SeverityModerate DiagnosisSeverity = "moderate"
	SeveritySevere   DiagnosisSeverity = "severe"
)

// DiseaseDiagnosis feeds the plant health evaluator. Only IsResolved is
// mutable after creation.
type DiseaseDiagnosis struct {
	ID          uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UID         string            `gorm:"column:uid;size:128;index;not null" json:"uid"`
	PlantName   string            `gorm:"column:plant_name;size:120;not null" json:"plantName"`
	DiseaseName string            `gorm:"column:disease_name;size:120" json:"diseaseName"`
	Severity    DiagnosisSeverity `gorm:"size:16;not null" json:"severity"`
	IsResolved  bool              `gorm:"column:is_resolved;not null;default:false" json:"isResolved"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (DiseaseDiagnosis) TableName() string {
	return "disease_diagnoses"
}
