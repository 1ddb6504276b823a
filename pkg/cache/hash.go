package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is hashed into every key. Bump it when the layout JSON or an
// artifact encoding changes so stale entries are never served.
const keyVersion = 1

// hashKey returns kind + ":" + the SHA-256 of the JSON-encoded parts.
// Parts are plain option structs and strings, so encoding cannot fail.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(struct {
		V     int   `json:"v"`
		Parts []any `json:"p"`
	}{keyVersion, parts})
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data. Payload documents are hashed
// with it before they become part of an artifact key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
