// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the outcome of visiting one file
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusUnchanged              // No entry matched, file left alone
	StatusUpdated                // Content changed and was written back
	StatusWouldUpdate            // Content would change, preview mode only
	StatusFailed                 // Walk, read, decode or write failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	case StatusWouldUpdate:
		return "would update"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🚨 FailureKind says which step of processing a file failed
type FailureKind int

const (
	FailureWalk FailureKind = iota + 1
	FailureRead
	FailureDecode
	FailureWrite
)

var (
	ErrWalk   = errors.Base("walk failed")
	ErrRead   = errors.Base("read failed")
	ErrDecode = errors.Base("decode failed")
	ErrWrite  = errors.Base("write failed")
)

// String returns a string representation of FailureKind
func (k FailureKind) String() string {
	switch k {
	case FailureWalk:
		return "walk"
	case FailureRead:
		return "read"
	case FailureDecode:
		return "decode"
	case FailureWrite:
		return "write"
	default:
		return "unknown"
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case FailureWalk:
		return ErrWalk
	case FailureRead:
		return ErrRead
	case FailureDecode:
		return ErrDecode
	case FailureWrite:
		return ErrWrite
	default:
		return nil
	}
}

// 🚨 FileError is a per-file failure. It unwraps to the underlying cause and
// matches the sentinel of its kind, so both errors.Is(err, fs.ErrPermission)
// and errors.Is(err, ErrRead) work.
type FileError struct {
	Path string
	Kind FailureKind
	Err  error
}

// NewFileError creates a FileError
func NewFileError(path string, kind FailureKind, err error) *FileError {
	return &FileError{Path: path, Kind: kind, Err: err}
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func (e *FileError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// 📄 FileResult is the outcome of processing one path
type FileResult struct {
	Path         string     // Path as visited by the walker
	Status       FileStatus // What happened
	Replacements int        // Matches found across all entries
	Diff         string     // Preview diff, set for StatusWouldUpdate
	Err          *FileError // Set for StatusFailed
}

// Failed creates a FileResult for a failure
func Failed(path string, kind FailureKind, err error) FileResult {
	return FileResult{
		Path:   path,
		Status: StatusFailed,
		Err:    NewFileError(path, kind, err),
	}
}

// 📈 Summary aggregates the results of a run. It is not safe for concurrent use.
type Summary struct {
	Results []FileResult
}

// Add records a result
func (s *Summary) Add(r FileResult) {
	s.Results = append(s.Results, r)
}

// Sort orders results by path
func (s *Summary) Sort() {
	sort.SliceStable(s.Results, func(i, j int) bool {
		return s.Results[i].Path < s.Results[j].Path
	})
}

// Count returns how many results have the given status
func (s *Summary) Count(st FileStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == st {
			n++
		}
	}
	return n
}

// Paths returns the paths of all results with the given status
func (s *Summary) Paths(st FileStatus) []string {
	var out []string
	for _, r := range s.Results {
		if r.Status == st {
			out = append(out, r.Path)
		}
	}
	return out
}

// Failures returns the failed results
func (s *Summary) Failures() []FileResult {
	var out []FileResult
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}

// Replacements returns the total number of matches across all results
func (s *Summary) Replacements() int {
	n := 0
	for _, r := range s.Results {
		n += r.Replacements
	}
	return n
}

// Visited returns the number of files and directories that produced a result
func (s *Summary) Visited() int {
	return len(s.Results)
}
