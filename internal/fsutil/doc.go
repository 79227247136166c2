// Package fsutil provides file system access for model discovery, reading and
// output writing. It goes through an abstract storage service so model paths
// may be local files or any URL scheme the service understands.
package fsutil
