package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag is an owner-scoped label. Removing a tag from a task clears the
// task's reference; it never deletes the tag.
type Tag struct {
	ID        uuid.UUID `db:"tag_id" json:"tag_id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

const maxTagNameLength = 50

// NewTag builds a tag owned by ownerID. The caller resolves name
// collisions before construction.
func NewTag(ownerID uuid.UUID, name string, now time.Time) (Tag, error) {
	name, err := checkTagName(name)
	if err != nil {
		return Tag{}, err
	}

	return Tag{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename replaces the name. Identity renames skip uniqueness resolution in
// the handler, same as task lists.
func (g *Tag) Rename(name string, now time.Time) error {
	name, err := checkTagName(name)
	if err != nil {
		return err
	}
	g.Name = name
	g.UpdatedAt = now
	return nil
}

func checkTagName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", violation("name", "tag name is required")
	}
	if len(name) > maxTagNameLength {
		return "", violation("name", "tag name cannot exceed %d characters", maxTagNameLength)
	}
	return name, nil
}
