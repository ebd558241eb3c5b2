package dto

import "wanderplan/internal/models"

type DayRequest struct {
	DayNumber  int               `json:"day_number"`
	Date       string            `json:"date"`
	Activities []models.Activity `json:"activities"`
}

type DayResponse struct {
	ID         string            `json:"id"`
	DayNumber  int               `json:"day_number"`
	Date       string            `json:"date"`
	Activities []models.Activity `json:"activities"`
}
