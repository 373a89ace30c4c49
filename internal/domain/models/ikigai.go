package models

import (
	"time"
)

// IkigaiID is the fixed primary key of the mission record. There is
// exactly one row per install; writes upsert against this key.
const IkigaiID = "ikigai"

// Ikigai is the user's mission statement. It is injected into every
// generation prompt as the primary guiding context.
type Ikigai struct {
	ID        string    `json:"id"`
	Mission   string    `json:"mission"`
	Purpose   string    `json:"purpose"`
	Values    string    `json:"values"`
	Goals     string    `json:"goals"`
	Audience  string    `json:"audience"`
	Voice     string    `json:"voice"`
	Enemy     *string   `json:"enemy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
