package upload

import (
	"io"
)

// File is an incoming image: the declared metadata checked before
// any network call, plus the byte stream to forward.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Result is the host's answer: canonical URL, the derived
// identifier used for transformation URLs, and image metadata.
type Result struct {
	URL       string `json:"url"`
	DerivedID string `json:"derived_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	ByteSize  int64  `json:"byte_size"`
}

// FileError pairs a failed batch entry with its error. Batch uploads
// collect these instead of aborting on the first failure.
type FileError struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

func (e FileError) Error() string {
	return e.Name + ": " + e.Err.Error()
}
