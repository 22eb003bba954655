// Package blobstore provides storage abstraction for catalog snapshots.
//
// BlobStore is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with atomic writes
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and S3-compatible storage
package blobstore
