// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the read-only operations the scanner needs, enabling
// testability through an in-memory implementation while using the OS
// filesystem in production.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//
// Neither implementation ever writes to the filesystem it reads.
package filesystem
