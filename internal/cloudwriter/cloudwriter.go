package cloudwriter

import "io"

// CloudWriter buffers an object and uploads it on Close.
type CloudWriter interface {
	io.Writer
	io.Closer
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
