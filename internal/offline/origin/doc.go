// Package origin provides the network side of the offline worker: round
// trippers that fetch shell assets from an HTTP server or an S3 bucket.
package origin
