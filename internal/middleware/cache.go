package middleware

import "github.com/gin-gonic/gin"

const responseMetaKey = "response_meta"

// SetCacheHit records whether the response body came from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	ensureMeta(c)["cacheHit"] = hit
}

// ExtractMeta returns the metadata collected for the current response.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
