package profile

import (
	"fmt"
	"maps"
)

// Names maps cluster labels to display names. A nil or partial mapping is
// valid; labels without an entry render as "Cluster {id}".
type Names map[int]string

// DefaultNames returns the built-in display names for five clusters.
func DefaultNames() Names {
	return Names{
		0: "Regular Participants",
		1: "Active Conversationalists",
		2: "Information Broadcasters",
		3: "Silent Observers",
		4: "Night Owls",
	}
}

// Name returns the display name of label. An explicit entry is returned as
// given, even when empty.
func (n Names) Name(label int) string {
	if name, ok := n[label]; ok {
		return name
	}
	return fmt.Sprintf("Cluster %d", label)
}

// Clone returns an independent copy of n.
func (n Names) Clone() Names {
	if n == nil {
		return nil
	}
	return maps.Clone(n)
}
