package entity

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=50"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=50"`
}
