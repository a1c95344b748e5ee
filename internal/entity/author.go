package entity

type Author struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=100"`
	CountryID int64  `json:"country_id"`
}
