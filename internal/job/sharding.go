package job

import (
	"fmt"
	"hash/fnv"
)

// ShardLabel hashes a list id to a stable small cardinality label (0-31),
// used as a prometheus label so per-list metrics stay bounded.
func ShardLabel(listID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(listID))
	return fmt.Sprintf("%d", h.Sum32()%32)
}
