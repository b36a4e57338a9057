// Package orchestration coordinates the concurrent classification of seed
// batches. It fans seeds out to a bounded set of workers sharing one
// sequence cache and collects results in seed-submission order, independent
// of completion order.
package orchestration
