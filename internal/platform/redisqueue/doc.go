// Package redisqueue implements task.Queue on Redis Streams.
//
// Messages are appended with XADD and read through a consumer group with
// XREADGROUP. A delivery stays in the group's pending entries list until it
// is acknowledged with XACK; entries left pending by a stalled or crashed
// consumer are taken over with XAUTOCLAIM once they exceed the visibility
// timeout. Several API instances can therefore share one stream, and a match
// request survives a restart of the process that received it.
package redisqueue
