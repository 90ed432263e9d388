package models

import "time"

type Project struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	DetailedDescription *string    `json:"detailedDescription"`
	ImageURL            *string    `json:"imageUrl"`
	LiveURL             *string    `json:"liveUrl"`
	GithubURL           *string    `json:"githubUrl"`
	Technologies        []string   `json:"technologies"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsFeatured          bool       `json:"isFeatured"`
	DisplayOrder        int        `json:"displayOrder"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// ProjectPatch carries the fields of an update; nil means unchanged.
type ProjectPatch struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	DetailedDescription *string    `json:"detailedDescription"`
	ImageURL            *string    `json:"imageUrl"`
	LiveURL             *string    `json:"liveUrl"`
	GithubURL           *string    `json:"githubUrl"`
	Technologies        []string   `json:"technologies"`
	StartDate           *time.Time `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsFeatured          *bool      `json:"isFeatured"`
	DisplayOrder        *int       `json:"displayOrder"`
}

func (p *Project) Apply(patch ProjectPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.DetailedDescription != nil {
		p.DetailedDescription = patch.DetailedDescription
	}
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	if patch.LiveURL != nil {
		p.LiveURL = patch.LiveURL
	}
	if patch.GithubURL != nil {
		p.GithubURL = patch.GithubURL
	}
	if patch.Technologies != nil {
		p.Technologies = patch.Technologies
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = patch.EndDate
	}
	if patch.IsFeatured != nil {
		p.IsFeatured = *patch.IsFeatured
	}
	if patch.DisplayOrder != nil {
		p.DisplayOrder = *patch.DisplayOrder
	}
}
