package models

import "time"

type Skill struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	ProficiencyLevel int       `json:"proficiencyLevel"`
	IconURL          *string   `json:"iconUrl"`
	DisplayOrder     int       `json:"displayOrder"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type SkillPatch struct {
	Name             *string `json:"name"`
	Category         *string `json:"category"`
	ProficiencyLevel *int    `json:"proficiencyLevel" binding:"omitempty,min=1,max=100"`
	IconURL          *string `json:"iconUrl"`
	DisplayOrder     *int    `json:"displayOrder"`
}

func (s *Skill) Apply(patch SkillPatch) {
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Category != nil {
		s.Category = *patch.Category
	}
	if patch.ProficiencyLevel != nil {
		s.ProficiencyLevel = *patch.ProficiencyLevel
	}
	if patch.IconURL != nil {
		s.IconURL = patch.IconURL
	}
	if patch.DisplayOrder != nil {
		s.DisplayOrder = *patch.DisplayOrder
	}
}
