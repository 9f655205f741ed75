// Package file provides a file-based Store implementation for the config package.
//
// A Store owns a single file path. Every Read and Write touches the
// filesystem again; nothing is cached. The parent directory is created on
// both Read and Write.
//
// Usage:
//
//	store := file.New("/home/me/.config/app/config.yml")
//	tree, err := store.Read()
//	err = store.Write(tree)
//
// Error Handling:
//   - A missing file reads as an empty tree
//   - Undecodable contents return *config.ParseError carrying the path
//   - Use errors.Is(err, file.ErrPathIsDirectory) to detect a directory at the path
//
// Writes truncate and replace the file and are not atomic.
package file
