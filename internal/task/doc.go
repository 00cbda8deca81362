// Package task manages background job queuing, processing, and lifecycle.
// It runs long provider calls, such as question generation, off the HTTP
// request path with a bounded number of concurrent workers.
package task
