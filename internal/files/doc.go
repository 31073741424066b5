// Package files provides file-related functionality organized into sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Tree walking and hazard detection for synchronized folders
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/stguard/internal/files/filesystem"
//	    "github.com/vvka-141/stguard/internal/files/scanner"
//	)
//
//	s := scanner.NewScanner(logger)
//	for finding := range s.Scan(stguard.SynchronizedFolder{Path: "/sync/photos"}) {
//	    fmt.Println(finding)
//	}
package files
