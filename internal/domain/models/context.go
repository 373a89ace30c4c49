package models

import (
	"time"
)

// ContextDocument is user-uploaded reference material. The extracted
// text is what generation prompts consume; the original file lives in
// object storage under ObjectKey when storage is configured.
type ContextDocument struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Content   string    `json:"content,omitempty"`
	ObjectKey string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
