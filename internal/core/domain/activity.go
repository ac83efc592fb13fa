package domain

import "time"

// Activity actions recorded for every successful mutation.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ActivityEntry is one line of the mutation audit trail.
type ActivityEntry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Resource  string    `json:"resource" bson:"resource"`
	RecordID  string    `json:"recordId" bson:"record_id"`
	Action    string    `json:"action" bson:"action"`
	ActorID   string    `json:"actorId,omitempty" bson:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
