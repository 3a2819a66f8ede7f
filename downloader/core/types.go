package core

import (
	"fmt"
	"strings"
)

// Kind selects which runtime flavour is resolved or installed.
type Kind string

const (
	JRE Kind = "jre"
	JDK Kind = "jdk"
)

// ParseKind accepts "jre" or "jdk" in any case.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case JRE:
		return JRE, nil
	case JDK:
		return JDK, nil
	}
	return "", fmt.Errorf("unknown runtime kind %q (expected jre or jdk)", s)
}

// ProgressEvent is emitted while an archive is streamed to disk.
// It is either Started or Chunk.
type ProgressEvent interface {
	progressEvent()
}

// Started announces the expected total size before the first chunk.
type Started struct {
	Total int64
}

// Chunk reports one chunk written to the temporary file.
type Chunk struct {
	Size int
}

func (Started) progressEvent() {}
func (Chunk) progressEvent()   {}

// ProgressSink receives progress events inline on the downloading goroutine,
// so it must return quickly.
type ProgressSink func(ProgressEvent)
