// Package services holds the dispatch domain services.
//
//   - CourierPool filters couriers to the eligible set and annotates distance
//   - CourierScorer computes the weighted 0..100 score and its breakdown
//   - OrderDispatcher ranks candidates and binds the winner to a ready order
//
// These are pure; persistence and concurrency control live in the
// application layer.
package services
