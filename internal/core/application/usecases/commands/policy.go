package commands

import (
	"time"

	"fooddispatch/internal/core/domain/model/courier"
)

// DispatchPolicy holds the tunables shared by the dispatch handlers.
type DispatchPolicy struct {
	// MaxConcurrentDeliveries caps a courier's in-flight deliveries.
	MaxConcurrentDeliveries int

	// MaxCapacityRetries bounds how often candidate selection restarts after
	// losing a capacity race.
	MaxCapacityRetries uint64

	// RetryDelay is the pause between those restarts.
	RetryDelay time.Duration

	// StorageTimeout bounds the storage work of a single command.
	StorageTimeout time.Duration

	// NotifyTimeout bounds a single notification after commit.
	NotifyTimeout time.Duration

	// ManualAssignEnforcesCapacity applies MaxConcurrentDeliveries to
	// operator overrides as well.
	ManualAssignEnforcesCapacity bool

	// AutoDispatchOnReady requests dispatch as soon as a seller marks an
	// order ready.
	AutoDispatchOnReady bool
}

func DefaultDispatchPolicy() DispatchPolicy {
	return DispatchPolicy{
		MaxConcurrentDeliveries:      courier.MaxConcurrentDeliveries,
		MaxCapacityRetries:           3,
		RetryDelay:                   25 * time.Millisecond,
		StorageTimeout:               5 * time.Second,
		NotifyTimeout:                2 * time.Second,
		ManualAssignEnforcesCapacity: true,
		AutoDispatchOnReady:          true,
	}
}

func (p DispatchPolicy) manualLimit() int {
	if p.ManualAssignEnforcesCapacity {
		return p.MaxConcurrentDeliveries
	}
	return 0
}
