package scanner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDepth is returned for depth settings other than light and deep.
var ErrUnknownDepth = errors.New("unknown research depth")

// Depth is the coarse knob controlling query breadth and result volume.
type Depth string

const (
	DepthLight Depth = "light"
	DepthDeep  Depth = "deep"
)

// Profile is the fixed query list and per-query cap for a depth.
type Profile struct {
	Depth      Depth
	Queries    []string
	MaxResults int
}

var lightQueries = []string{
	"human AI collaboration",
	"trust in AI assistants",
	"mental models of AI systems",
}

var deepQueries = []string{
	"human AI collaboration",
	"trust in AI assistants",
	"mental models of AI systems",
	"human-in-the-loop machine learning",
	"explainable AI user study",
	"AI pair programming",
	"prompt engineering practices",
	"human agent teaming communication",
}

// ProfileFor maps a depth string onto its fixed profile.
func ProfileFor(depth string) (Profile, error) {
	switch Depth(strings.ToLower(strings.TrimSpace(depth))) {
	case DepthLight:
		return Profile{Depth: DepthLight, Queries: append([]string(nil), lightQueries...), MaxResults: 5}, nil
	case DepthDeep:
		return Profile{Depth: DepthDeep, Queries: append([]string(nil), deepQueries...), MaxResults: 10}, nil
	default:
		return Profile{}, fmt.Errorf("%q: %w", depth, ErrUnknownDepth)
	}
}
