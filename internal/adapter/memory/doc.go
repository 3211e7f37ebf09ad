// Package memory implements the poll and response repositories in process memory.
//
// Each repository guards its state with one RWMutex; id allocation and insertion
// happen under the write lock, lists are copied under the read lock. Data is lost on restart.
package memory
