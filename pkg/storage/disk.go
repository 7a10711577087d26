// Package storage abstracts file storage behind the Disk interface with
// local-filesystem and S3-compatible drivers. Uploaded artisan and product
// images go through it so the same code serves a laptop and a bucket.
package storage

import "io"

// Disk is the storage driver contract.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	GetStream(path string) (io.ReadCloser, error)
	Exists(path string) bool
	Delete(path string) error
	URL(path string) string
	Files(directory string) ([]string, error)
	AllFiles(directory string) ([]string, error)
	Directories(directory string) ([]string, error)
	MakeDirectory(path string) error
	DeleteDirectory(path string) error
}
