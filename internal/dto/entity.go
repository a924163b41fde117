package dto

import (
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
)

// CreateEntityRequest defines the data needed to create a business entity.
type CreateEntityRequest struct {
	Name                string  `json:"name" binding:"required"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode" binding:"omitempty,iso4217"`
}

// EntityResponse defines the data returned for a business entity.
type EntityResponse struct {
	EntityID            string    `json:"entityID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToEntityResponse converts a domain.BusinessEntity to EntityResponse DTO.
func ToEntityResponse(e *domain.BusinessEntity) EntityResponse {
	return EntityResponse{
		EntityID:            e.EntityID,
		Name:                e.Name,
		Description:         e.Description,
		DefaultCurrencyCode: e.DefaultCurrencyCode,
		IsActive:            e.IsActive,
		CreatedAt:           e.CreatedAt,
	}
}

// ListEntitiesResponse wraps the list of entities.
type ListEntitiesResponse struct {
	Entities []EntityResponse `json:"entities"`
}
