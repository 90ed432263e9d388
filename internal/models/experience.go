package models

import "time"

type Experience struct {
	ID               string     `json:"id"`
	Company          string     `json:"company"`
	Position         string     `json:"position"`
	Location         *string    `json:"location"`
	Description      string     `json:"description"`
	Responsibilities []string   `json:"responsibilities"`
	Technologies     []string   `json:"technologies"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	IsCurrentRole    bool       `json:"isCurrentRole"`
	DisplayOrder     int        `json:"displayOrder"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type ExperiencePatch struct {
	Company          *string    `json:"company"`
	Position         *string    `json:"position"`
	Location         *string    `json:"location"`
	Description      *string    `json:"description"`
	Responsibilities []string   `json:"responsibilities"`
	Technologies     []string   `json:"technologies"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	IsCurrentRole    *bool      `json:"isCurrentRole"`
	DisplayOrder     *int       `json:"displayOrder"`
}

func (e *Experience) Apply(patch ExperiencePatch) {
	if patch.Company != nil {
		e.Company = *patch.Company
	}
	if patch.Position != nil {
		e.Position = *patch.Position
	}
	if patch.Location != nil {
		e.Location = patch.Location
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Responsibilities != nil {
		e.Responsibilities = patch.Responsibilities
	}
	if patch.Technologies != nil {
		e.Technologies = patch.Technologies
	}
	if patch.StartDate != nil {
		e.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		e.EndDate = patch.EndDate
	}
	if patch.IsCurrentRole != nil {
		e.IsCurrentRole = *patch.IsCurrentRole
	}
	if patch.DisplayOrder != nil {
		e.DisplayOrder = *patch.DisplayOrder
	}
}
