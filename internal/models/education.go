package models

import "time"

type Education struct {
	ID                  string     `json:"id"`
	Institution         string     `json:"institution"`
	Degree              string     `json:"degree"`
	FieldOfStudy        *string    `json:"fieldOfStudy"`
	Location            *string    `json:"location"`
	Description         *string    `json:"description"`
	GPA                 *float64   `json:"gpa"`
	Coursework          []string   `json:"coursework"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsCurrentlyEnrolled bool       `json:"isCurrentlyEnrolled"`
	DisplayOrder        int        `json:"displayOrder"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type EducationPatch struct {
	Institution         *string    `json:"institution"`
	Degree              *string    `json:"degree"`
	FieldOfStudy        *string    `json:"fieldOfStudy"`
	Location            *string    `json:"location"`
	Description         *string    `json:"description"`
	GPA                 *float64   `json:"gpa"`
	Coursework          []string   `json:"coursework"`
	StartDate           *time.Time `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsCurrentlyEnrolled *bool      `json:"isCurrentlyEnrolled"`
	DisplayOrder        *int       `json:"displayOrder"`
}

func (e *Education) Apply(patch EducationPatch) {
	if patch.Institution != nil {
		e.Institution = *patch.Institution
	}
	if patch.Degree != nil {
		e.Degree = *patch.Degree
	}
	if patch.FieldOfStudy != nil {
		e.FieldOfStudy = patch.FieldOfStudy
	}
	if patch.Location != nil {
		e.Location = patch.Location
	}
	if patch.Description != nil {
		e.Description = patch.Description
	}
	if patch.GPA != nil {
		e.GPA = patch.GPA
	}
	if patch.Coursework != nil {
		e.Coursework = patch.Coursework
	}
	if patch.StartDate != nil {
		e.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		e.EndDate = patch.EndDate
	}
	if patch.IsCurrentlyEnrolled != nil {
		e.IsCurrentlyEnrolled = *patch.IsCurrentlyEnrolled
	}
	if patch.DisplayOrder != nil {
		e.DisplayOrder = *patch.DisplayOrder
	}
}
