package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sharemark/sharemark/internal/httpserver/deps"
	"github.com/sharemark/sharemark/internal/intercept"
)

type componentStatus struct {
	OK              bool   `json:"ok"`
	BookmarksLoaded *int   `json:"bookmarks_loaded,omitempty"`
	LastReload      string `json:"last_reload,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Error           string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode        string                     `json:"mode"`
	Components  map[string]componentStatus `json:"components"`
	Interceptor intercept.Stats            `json:"interceptor"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		components := map[string]componentStatus{
			"bookmarks": checkBookmarks(d),
			"redis":     checkRedis(d),
		}

		var stats intercept.Stats
		if d.Stats != nil {
			stats = d.Stats()
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Mode:        d.BookmarkMode,
			Components:  components,
			Interceptor: stats,
		})
	}
}

func checkBookmarks(d deps.Deps) componentStatus {
	if d.MemoryIndex == nil {
		return componentStatus{OK: true, Mode: "redis"}
	}

	count := d.MemoryIndex.Count()
	lastReload := d.MemoryIndex.LastReload()
	lastReloadStr := "never"
	if !lastReload.IsZero() {
		lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
	}
	return componentStatus{
		OK:              !lastReload.IsZero(),
		BookmarksLoaded: &count,
		LastReload:      lastReloadStr,
		Mode:            "file",
	}
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:    false,
			Error: "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:    false,
			Error: err.Error(),
		}
	}

	return componentStatus{OK: true}
}
