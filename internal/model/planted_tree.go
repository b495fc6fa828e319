package model

import "time"

// PlantedTree records a single logged tree. Impact fields are set at
// creation and only read in aggregate sums afterward.
type PlantedTree struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID       string    `gorm:"column:uid;size:128;index;not null" json:"uid"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Species   string    `gorm:"size:120" json:"species"`
	Location  string    `gorm:"size:255" json:"location"`
	PhotoURL  *string   `gorm:"size:512" json:"photoUrl,omitempty"`
	CO2Kg     float64   `gorm:"column:co2_kg;not null" json:"co2Kg"`
	O2LPerDay float64   `gorm:"column:o2_l_per_day;not null" json:"o2LPerDay"`
	AreaM2    float64   `gorm:"column:area_m2;not null" json:"areaM2"`
	PlantedAt time.Time `gorm:"column:planted_at;autoCreateTime;index" json:"plantedAt"`
}

func (PlantedTree) TableName() string {
	return "planted_trees"
}
