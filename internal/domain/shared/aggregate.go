package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is implemented by every aggregate the repositories persist
type AggregateRoot interface {
	GetID() uuid.UUID
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot carries the identity, audit timestamps, pending
// domain events and the optimistic-lock version shared by all
// aggregates. Version backs the optimistic-lock check in the
// persistence layer: every mutating method must call IncrementVersion.
type BaseAggregateRoot struct {
	ID           uuid.UUID `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot creates a base aggregate root with a fresh
// identity at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now()
	return BaseAggregateRoot{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// GetID returns the aggregate identity
func (a *BaseAggregateRoot) GetID() uuid.UUID {
	return a.ID
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
