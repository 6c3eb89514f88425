// Package source provides the file source boundary: listing workflow
// files, reading their contents, and persisting rewritten files. Two
// implementations exist, a local directory tree and a remote GitHub
// repository.
package source

import "context"

// Source lists workflow files and reads/writes their contents. Paths
// returned by List are opaque to callers and are passed back unchanged to
// Read and Write. The message is used by implementations that persist
// through a commit; others ignore it.
type Source interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, content []byte, message string) error
}
