package uid

import (
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates unique, time-sortable numeric IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a snowflake generator. The node number is derived
// from the hostname and pid so concurrent instances get distinct ranges.
func NewSnowflake() (*Snowflake, error) {
	h := fnv.New32a()
	host, _ := os.Hostname()
	h.Write([]byte(host))
	h.Write([]byte{byte(os.Getpid()), byte(os.Getpid() >> 8)})

	node, err := snowflake.NewNode(int64(h.Sum32() % 1024))
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique int64 ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
