package entity

import (
	"time"
)

// NoticeType defines the type of crew notice
type NoticeType string

const (
	NoticeReassignment  NoticeType = "reassignment"
	NoticeRepositioning NoticeType = "repositioning"
	NoticeLodging       NoticeType = "lodging"
	NoticeEscalation    NoticeType = "escalation"
)

// Notice is a message dispatched to a crew member or the duty desk
// through the notification service.
type Notice struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty"`
	Type      NoticeType `json:"type" bson:"type"`
	CrewID    string     `json:"crewId" bson:"crewId"`
	Text      string     `json:"text" bson:"text"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	SentAt    time.Time  `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	Status    string     `json:"status" bson:"status"`
}
