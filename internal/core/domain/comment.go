package domain

// Comment is a reply attached to a post, owned by its author.
type Comment struct {
	Meta    `bson:",inline"`
	PostID  string `json:"postId" bson:"post_id"`
	Content string `json:"content" bson:"content"`
}

func (c *Comment) Clone() *Comment {
	clone := *c
	return &clone
}
