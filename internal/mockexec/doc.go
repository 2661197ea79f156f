// Package mockexec replays queued execution results instead of spawning processes.
//
// A ResponseQueue is an ordinary value: construct one per test, enqueue the
// results the code under test should observe, and hand Factory(queue) to the
// session in place of the real runner factory. Results are served in FIFO
// order; an exhausted queue yields DefaultFailureResult.
package mockexec
