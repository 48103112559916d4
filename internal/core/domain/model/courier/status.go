package courier

import (
	"fmt"

	"fooddispatch/internal/pkg/errs"
)

// Status is the administrative availability of a courier. Together with the
// online flag it decides dispatch eligibility: only an online, active courier
// may receive orders.
type Status int

const (
	UnknownStatus Status = iota
	Active
	Inactive
	Offline
)

var statusNames = map[Status]string{
	UnknownStatus: "unknown",
	Active:        "active",
	Inactive:      "inactive",
	Offline:       "offline",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != UnknownStatus && name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("courier status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[UnknownStatus]
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == UnknownStatus {
		return errs.NewValueIsInvalidErrorWithCause("courier status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}
