package models

import "time"

// AuthSession is the redis-stored login session the auth middleware resolves a
// bearer token into.
type AuthSession struct {
	SessionID string `json:"sessionId"`
	MentorID  string `json:"mentorId"`
	Email     string `json:"email,omitempty"`
}

// BookedSession is the read-only projection of a mentorship session document.
// Session lifecycle is owned elsewhere; this service only consults sessions to
// refuse removing availability that already has bookings inside it.
type BookedSession struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	MentorID  string    `json:"mentorId" bson:"mentorId"`
	LearnerID string    `json:"learnerId" bson:"learnerId"`
	Date      time.Time `json:"date" bson:"date"`
	DayOfWeek int       `json:"dayOfWeek" bson:"dayOfWeek"`
	StartTime string    `json:"startTime" bson:"startTime"`
	EndTime   string    `json:"endTime" bson:"endTime"`
	Status    string    `json:"status" bson:"status"`
}

const (
	SessionStatusPending  = "pending"
	SessionStatusApproved = "approved"
)
