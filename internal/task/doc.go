// Package task runs asynchronous matching work off a message queue.
// It provides the queue contracts, an in-process queue, a worker pool with a
// redelivery loop for stalled messages, and the matching engine that turns a
// match request into a COMPLETED or FAILED match task.
package task
