package controllers

import (
	"log"
	"net/http"

	"conduit/internal/cache"
	"conduit/internal/repository"

	"github.com/gin-gonic/gin"
)

type TagController struct {
	tags  repository.TagRepository
	cache *cache.RedisClient
}

// NewTagController wires the tag endpoint. cache may be nil; every read
// then goes to the database.
func NewTagController(tags repository.TagRepository, redisCache *cache.RedisClient) *TagController {
	return &TagController{tags: tags, cache: redisCache}
}

func (tc *TagController) ListTags(c *gin.Context) {
	if tc.cache != nil {
		if cached, hit, err := tc.cache.GetTagList(c.Request.Context()); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"tags": cached})
			return
		} else if err != nil {
			log.Printf("Tag cache read failed: %v", err)
		}
	}

	names, err := tc.tags.ListNames(c.Request.Context())
	if err != nil {
		renderError(c, http.StatusInternalServerError, "failed to list tags")
		return
	}
	if names == nil {
		names = []string{}
	}

	if tc.cache != nil {
		if err := tc.cache.SetTagList(c.Request.Context(), names, tagCacheTTL); err != nil {
			log.Printf("Tag cache write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"tags": names})
}
