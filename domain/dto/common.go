package dto

// IDParam is bound from a route parameter.
type IDParam struct {
	ID int64 `params:"id" validate:"required,gt=0"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
