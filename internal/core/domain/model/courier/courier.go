package courier

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"
	"fooddispatch/internal/pkg/guard"
)

const (
	// MaxConcurrentDeliveries is the default cap on in-flight deliveries per courier.
	MaxConcurrentDeliveries = 5

	// DefaultRating is assumed for couriers without a rating.
	DefaultRating = 5.0
	MaxRating     = 5.0
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	ErrCourierIsDeactivated    = errors.New("courier is deactivated")
	ErrCapacityExhausted       = errors.New("courier has no free delivery capacity")
)

// Courier is the aggregate root for a delivery courier: availability,
// position, rating and the in-flight delivery counter used as the capacity
// ledger.
type Courier struct {
	id    kernel.UUID
	name  string
	phone string

	isOnline bool
	status   Status

	currentDeliveries int
	totalDeliveries   int
	rating            float64

	location *kernel.Location

	guard guard.ConstructorGuard
}

// NewCourier registers a courier. New couriers start offline with the
// default rating and no location.
func NewCourier(id kernel.UUID, name, phone string) (*Courier, error) {
	c := &Courier{
		status: Offline,
		rating: DefaultRating,
		phone:  strings.TrimSpace(phone),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Snapshot is the persisted state of a courier. A nil Rating means the
// courier has not been rated yet.
type Snapshot struct {
	ID                kernel.UUID
	Name              string
	Phone             string
	IsOnline          bool
	Status            Status
	CurrentDeliveries int
	TotalDeliveries   int
	Rating            *float64
	Location          *kernel.Location
}

// RestoreCourier rebuilds a courier from storage.
func RestoreCourier(s Snapshot) (*Courier, error) {
	c := &Courier{
		phone:    s.Phone,
		isOnline: s.IsOnline,
		rating:   DefaultRating,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(s.ID),
		c.setName(s.Name),
		c.setStatus(s.Status),
		c.setCounters(s.CurrentDeliveries, s.TotalDeliveries),
		c.restoreRating(s.Rating),
		c.restoreLocation(s.Location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Snapshot returns the state RestoreCourier accepts.
func (c *Courier) Snapshot() Snapshot {
	rating := c.rating
	return Snapshot{
		ID:                c.id,
		Name:              c.name,
		Phone:             c.phone,
		IsOnline:          c.isOnline,
		Status:            c.status,
		CurrentDeliveries: c.currentDeliveries,
		TotalDeliveries:   c.totalDeliveries,
		Rating:            &rating,
		Location:          c.Location(),
	}
}

func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

func (c *Courier) Phone() string {
	return c.phone
}

func (c *Courier) IsOnline() bool {
	return c.isOnline
}

func (c *Courier) Status() Status {
	return c.status
}

func (c *Courier) CurrentDeliveries() int {
	return c.currentDeliveries
}

func (c *Courier) TotalDeliveries() int {
	return c.totalDeliveries
}

func (c *Courier) Rating() float64 {
	return c.rating
}

// Location returns a copy of the last known position, or nil.
func (c *Courier) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

// IsEligible reports whether automatic dispatch may hand this courier another
// order under the given concurrency cap.
func (c *Courier) IsEligible(maxConcurrent int) bool {
	return c.isOnline && c.status == Active && c.currentDeliveries < maxConcurrent
}

// GoOnline is the courier's own toggle. Going online makes the courier
// active unless an administrator deactivated them.
func (c *Courier) GoOnline() error {
	if c.status == Inactive {
		return ErrCourierIsDeactivated
	}
	c.isOnline = true
	c.status = Active
	return nil
}

// GoOffline takes the courier out of the dispatch pool. In-flight deliveries
// are kept.
func (c *Courier) GoOffline() {
	c.isOnline = false
	if c.status != Inactive {
		c.status = Offline
	}
}

// Deactivate is the administrative block. Couriers are never deleted.
func (c *Courier) Deactivate() {
	c.isOnline = false
	c.status = Inactive
}

// Activate lifts a deactivation. The courier still has to go online.
func (c *Courier) Activate() {
	if c.status == Inactive {
		c.status = Offline
	}
}

func (c *Courier) UpdateLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = &location
	return nil
}

func (c *Courier) UpdateRating(rating float64) error {
	if math.IsNaN(rating) || rating < 0 || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, 0, MaxRating)
	}
	c.rating = rating
	return nil
}

// TakeDelivery increments the in-flight counter. A limit of zero or less
// disables the cap (manual override).
func (c *Courier) TakeDelivery(limit int) error {
	if limit > 0 && c.currentDeliveries >= limit {
		return fmt.Errorf("%w: %d of %d in flight", ErrCapacityExhausted, c.currentDeliveries, limit)
	}
	c.currentDeliveries++
	return nil
}

// ReleaseDelivery decrements the in-flight counter, flooring at zero.
func (c *Courier) ReleaseDelivery() {
	if c.currentDeliveries > 0 {
		c.currentDeliveries--
	}
}

// CompleteDelivery releases capacity and counts the delivery towards the
// courier's experience.
func (c *Courier) CompleteDelivery() {
	c.ReleaseDelivery()
	c.totalDeliveries++
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Courier) setCounters(current, total int) error {
	var err error
	if current < 0 {
		err = errs.NewValueIsInvalidErrorWithCause("current deliveries", fmt.Errorf("%d is negative", current))
	}
	if total < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("total deliveries", fmt.Errorf("%d is negative", total)))
	}
	if err != nil {
		return err
	}
	c.currentDeliveries = current
	c.totalDeliveries = total
	return nil
}

func (c *Courier) restoreRating(rating *float64) error {
	if rating == nil {
		return nil
	}
	return c.UpdateRating(*rating)
}

func (c *Courier) restoreLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	return c.UpdateLocation(*location)
}
