package core

import "github.com/pkg/errors"

// Keys of the three persisted JSON documents.
const (
	KeyClasses = "classes"
	KeyCourses = "courses"
	KeyFiles   = "files"
)

var ErrKeyNotFound = errors.New("key not found")

type (
	// KV is the durable key-value storage the registries are flushed to.
	// Values are whole JSON documents; partial writes are not supported.
	KV interface {
		// Get returns the value stored under key, or ErrKeyNotFound.
		Get(key string) ([]byte, error)
		Put(key string, value []byte) error
		Delete(key string) error
		Close() error
	}
)
