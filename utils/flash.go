package utils

import (
	"encoding/json"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys for values that live exactly one request.
const (
	FlashErrors = "errors"
	FlashOld    = "old"
	FlashStatus = "status"
)

// Flash stores v under key for the next request. Values are JSON encoded so
// the cookie store needs no gob registration.
func Flash(ctx *gin.Context, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		Sugar.Warnf("flash marshal failed key=%s err=%v", key, err)
		return
	}
	sessions.Default(ctx).AddFlash(string(b), key)
}

// SaveSession persists pending flashes; call before redirecting.
func SaveSession(ctx *gin.Context) {
	if err := sessions.Default(ctx).Save(); err != nil {
		Sugar.Warnf("session save failed: %v", err)
	}
}

// TakeFlash decodes and consumes the flash stored under key into out.
// The consumption is only durable after SaveSession.
func TakeFlash(ctx *gin.Context, key string, out interface{}) bool {
	session := sessions.Default(ctx)
	flashes := session.Flashes(key)
	if len(flashes) == 0 {
		return false
	}
	raw, ok := flashes[len(flashes)-1].(string)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}
