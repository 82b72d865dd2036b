package dto

import (
	"time"
)

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type PriorityRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type PriorityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
