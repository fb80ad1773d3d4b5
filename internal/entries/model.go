package entries

import "time"

// Entry is a journal entry owned by exactly one user.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Update is a sparse update; nil fields are left untouched.
type Update struct {
	Title   *string
	Content *string
}

// Empty reports whether the update carries no fields.
func (u Update) Empty() bool {
	return u.Title == nil && u.Content == nil
}
