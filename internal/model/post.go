package model

import "time"

// MaxPostMessage bounds the free-text message of posts, comments and replies.
const MaxPostMessage = 500

// IDSet is an ordered set of user ids stored as a JSON array column.
type IDSet []uint64

// Has reports membership of id.
func (s IDSet) Has(id uint64) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id if absent and reports whether the set changed.
func (s *IDSet) Add(id uint64) bool {
	if s.Has(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Remove deletes id if present and reports whether the set changed.
func (s *IDSet) Remove(id uint64) bool {
	for i, v := range *s {
		if v == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle flips membership of id and reports whether id is a member afterwards.
func (s *IDSet) Toggle(id uint64) bool {
	if s.Remove(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Post is stored as one row; likes, hide-list, comments and replies live in
// JSON columns so every mutation is an in-memory edit followed by a single
// whole-document save.
type Post struct {
	ID         uint64     `gorm:"primaryKey" json:"id"`
	AuthorID   uint64     `gorm:"not null;index:idx_author_time" json:"author_id"`
	Message    string     `gorm:"size:500" json:"message"`
	Images     []string   `gorm:"serializer:json;type:json" json:"images"`
	Visibility Visibility `gorm:"size:16;not null;default:everyone" json:"visibility"`
	Likes      IDSet      `gorm:"serializer:json;type:json" json:"likes"`
	HiddenTo   IDSet      `gorm:"serializer:json;type:json" json:"-"`
	Comments   []Comment  `gorm:"serializer:json;type:json" json:"comments"`
	CreatedAt  time.Time  `gorm:"index:idx_author_time" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Comment is an owned sub-document of a Post, addressed by its uuid.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  uint64    `json:"author_id"`
	Message   string    `json:"message"`
	Likes     IDSet     `json:"likes"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
}

// Reply is an owned sub-document of a Comment. RepliedComment is a
// denormalized snapshot of the comment being answered, kept for display even
// if the author later changes their name.
type Reply struct {
	ID             string         `json:"id"`
	AuthorID       uint64         `json:"author_id"`
	Message        string         `json:"message"`
	RepliedComment *QuotedComment `json:"replied_comment,omitempty"`
	Likes          IDSet          `json:"likes"`
	CreatedAt      time.Time      `json:"created_at"`
}

// QuotedComment is the display snapshot carried by a Reply.
type QuotedComment struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Message   string `json:"message"`
}

// Comment returns the comment with the given id, or nil.
func (p *Post) Comment(id string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// Reply returns the reply with the given id, or nil.
func (c *Comment) Reply(id string) *Reply {
	for i := range c.Replies {
		if c.Replies[i].ID == id {
			return &c.Replies[i]
		}
	}
	return nil
}
