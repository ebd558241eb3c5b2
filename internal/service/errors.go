package service

import "errors"

// Error taxonomy of the API. Handlers map these onto HTTP statuses with
// errors.Is; everything else is a 500.
var (
	// ErrTripNotFound: the referenced trip does not exist (404).
	ErrTripNotFound = errors.New("trip not found")

	// ErrExpenseNotFound: the referenced expense does not exist, or exists
	// under a different trip (404).
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrDayNotFound: the referenced itinerary day does not exist, or exists
	// under a different trip (404).
	ErrDayNotFound = errors.New("itinerary day not found")

	// ErrInvalidCategory: an expense category outside the fixed set (400).
	ErrInvalidCategory = errors.New("invalid expense category")

	// ErrOllamaUnavailable: transport failure or non-2xx from the Ollama
	// gateway (502). The wrapped message carries the upstream detail.
	ErrOllamaUnavailable = errors.New("ollama error")

	// ErrEstimateUnparsable: the gateway answered, but the payload does not
	// conform to the estimate schema (422). Distinct from ErrOllamaUnavailable
	// so clients can tell "couldn't reach AI" from "AI answered badly".
	ErrEstimateUnparsable = errors.New("could not parse estimates from ollama response")
)
