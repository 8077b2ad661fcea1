// Package hashset provides a concurrent hash set that uses lock striping and
// grows as elements are added.
//
// The set's buckets are partitioned among a fixed number of locks, called
// stripes. An element's hash selects both its stripe and its bucket, and the
// bucket count is always a multiple of the stripe count, so every bucket is
// guarded by exactly one stripe. Operations on elements in different stripes
// proceed in parallel.
//
// When the ratio of elements to buckets exceeds the maximum load factor the
// set acquires every stripe and multiplies its bucket count by the growth
// factor.
package hashset
