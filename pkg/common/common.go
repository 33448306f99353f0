package common

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	nodeID := int64(1)
	if v := os.Getenv("VROOM_NODE_ID"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil && p >= 0 && p < 1024 {
			nodeID = p
		}
	}
	var err error
	snowflakeNode, err = snowflake.NewNode(nodeID)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake int64 id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake id in base58 string form.
func UUID() string {
	return snowflakeNode.Generate().Base58()
}

// Must panics on a non-nil error.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RandomToken returns n random bytes hex encoded.
func RandomToken(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func IfEmptyStr(src string, defval string) string {
	if src == "" {
		return defval
	}
	return src
}
