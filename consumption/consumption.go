package consumption

import (
	internalconsumption "github.com/monospace/pagebuilder/internal/consumption"
)

// Re-exported errors from the internal consumption package.
var (
	ErrDescriptionRequired = internalconsumption.ErrDescriptionRequired
	ErrAmountInvalid       = internalconsumption.ErrAmountInvalid
	ErrForbidden           = internalconsumption.ErrForbidden
	ErrNotFound            = internalconsumption.ErrNotFound
)

// Re-exported types from the internal consumption package.
type (
	Consumption              = internalconsumption.Consumption
	ListFilter               = internalconsumption.ListFilter
	Repository               = internalconsumption.Repository
	GroupMembership          = internalconsumption.GroupMembership
	Service                  = internalconsumption.Service
	ServiceOption            = internalconsumption.ServiceOption
	CreateConsumptionRequest = internalconsumption.CreateConsumptionRequest
	NotFoundError            = internalconsumption.NotFoundError
)

// NewService constructs an expense service over the given repository.
func NewService(repo Repository, membership GroupMembership, opts ...ServiceOption) Service {
	return internalconsumption.NewService(repo, membership, opts...)
}

// NewMemoryConsumptionRepository constructs an in-memory expense repository.
func NewMemoryConsumptionRepository() Repository {
	return internalconsumption.NewMemoryConsumptionRepository()
}
