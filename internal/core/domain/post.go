package domain

// PostCategories lists the accepted values for Post.Category.
var PostCategories = []string{
	"Technology", "Lifestyle", "Travel", "Food", "Health", "Business", "General",
}

// Post is a blog article owned by its author.
type Post struct {
	Meta      `bson:",inline"`
	Title     string   `json:"title" bson:"title"`
	Content   string   `json:"content" bson:"content"`
	Excerpt   string   `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Category  string   `json:"category" bson:"category"`
	Tags      []string `json:"tags,omitempty" bson:"tags,omitempty"`
	Published bool     `json:"published" bson:"published"`
	Views     int64    `json:"views" bson:"views"`
}

func (p *Post) Clone() *Post {
	clone := *p
	clone.Tags = append([]string(nil), p.Tags...)
	return &clone
}
