package models

import "time"

// Project groups meetings and interviews for one research effort.
type Project struct {
	ProjectID   string    `json:"projectId"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Meeting is a recorded session attached to a project. VideoKey holds the
// storage key assigned by a completed upload, if any.
type Meeting struct {
	MeetingID string    `json:"meetingId"`
	ProjectID string    `json:"projectId"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	VideoKey  string    `json:"videoKey,omitempty"`
	HeldAt    time.Time `json:"heldAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Interview is a recorded interview attached to a project.
type Interview struct {
	InterviewID string    `json:"interviewId"`
	ProjectID   string    `json:"projectId"`
	UserID      string    `json:"userId"`
	Subject     string    `json:"subject"`
	VideoKey    string    `json:"videoKey,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
