package model

import "time"

// UserProgress stores cumulative environmental impact and the seed balance.
type UserProgress struct {
	UID               string    `gorm:"column:uid;primaryKey;size:128" json:"uid"`
	TreesPlanted      int64     `gorm:"column:trees_planted;not null;default:0" json:"treesPlanted"`
	CO2Reduced        float64   `gorm:"column:co2_reduced;not null;default:0" json:"co2Reduced"`
	OxygenGenerated   float64   `gorm:"column:oxygen_generated;not null;default:0" json:"oxygenGenerated"`
	WaterSaved        float64   `gorm:"column:water_saved;not null;default:0" json:"waterSaved"`
	GreenAreaExpanded float64   `gorm:"column:green_area_expanded;not null;default:0" json:"greenAreaExpanded"`
	EnergySaved       float64   `gorm:"column:energy_saved;not null;default:0" json:"energySaved"`
	SeedPoints        int64     `gorm:"column:seed_points;not null;default:0" json:"seedPoints"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
