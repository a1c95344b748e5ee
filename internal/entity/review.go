package entity

type Reviewer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=200"`
}

// Review is one reviewer's opinion of one book. Rating is the unit the
// aggregate book rating is computed from.
type Review struct {
	ID         int64  `json:"id"`
	Headline   string `json:"headline" validate:"required,notblank,max=200"`
	ReviewText string `json:"review_text" validate:"max=2000"`
	Rating     int    `json:"rating" validate:"gte=1,lte=5"`
	BookID     int64  `json:"book_id"`
	ReviewerID int64  `json:"reviewer_id"`
}
