// Package order holds the Order aggregate and its status state machine.
//
// All status changes go through Status.TransitionTo, so a call site can never
// write an arbitrary status. Dispatch lands a ready order in assigned; the
// courier's pick-up moves it to on_the_way. Removing the courier from an
// assigned order reverts it to ready.
package order
