// file: internals/realtime/events.go
package realtime

// Event names form a closed set; payload shapes live next to the publisher.
const (
	EvAssignmentCreated   = "assignment:created"
	EvAssignmentUpdated   = "assignment:updated"
	EvAssignmentDeleted   = "assignment:deleted"
	EvAssignmentSubmitted = "assignment:submitted"

	EvStudentsUpdated    = "school:students:updated"
	EvClassRosterUpdated = "school:class-roster:updated"
	EvStudentsRemoved    = "school:students:removed"

	EvStudentActivityNew = "student:activity:new"
	EvTeacherTaskUpdate  = "teacher:task:update"

	EvBadgeEarned = "badge:earned"
)

// Event is the wire envelope pushed to subscribed clients.
type Event struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"data,omitempty"`
}

// BadgeEarnedPayload is broadcast on successful badge collection.
type BadgeEarnedPayload struct {
	BadgeID   string `json:"badge_id"`
	BadgeName string `json:"badge_name"`
	Message   string `json:"message"`
}

// Room names. School rooms carry roster/assignment events for every
// teacher of that school; user rooms carry personal events (badge earned).
func SchoolRoom(schoolID string) string { return "school:" + schoolID }
func UserRoom(userID string) string     { return "user:" + userID }
