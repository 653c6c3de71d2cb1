// Package mmap provides read-only memory-mapped file access for corpus files.
//
// # Usage
//
//	m, err := mmap.Open("corpus.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	lines := bytes.Split(m.Data, []byte{'\n'})
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (advice is a no-op)
//
// Callers must not touch Data after Close returns.
package mmap
