// Package courier provides the Courier aggregate and the Earning entity.
//
// Key business rules:
//   - A courier is eligible for automatic dispatch only while online, active and
//     below the concurrency cap (MaxConcurrentDeliveries by default)
//   - Going online makes a courier active; going offline marks them offline;
//     administrators deactivate instead of deleting
//   - The in-flight delivery counter never drops below zero
//   - A missing rating is treated as DefaultRating
//   - Each delivered order yields one pending delivery_fee Earning
package courier
