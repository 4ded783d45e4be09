package id

import (
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// namespace root of ids derived from text
const namespace = "6ba7b811-9dad-11d1-80b4-00c04fd430c8"

// GenTraceID new random trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom stable id of text, the same text always yields the same id
func TraceIDFrom(text string) string {
	return foxuuid.Modify(namespace, text)
}
