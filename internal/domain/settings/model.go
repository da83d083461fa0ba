package settings

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("setting not found")

// UISetting is one key/value pair of screen configuration (display text,
// theme colors). Settings are loaded and saved through the repository only;
// there is no ambient global.
type UISetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
