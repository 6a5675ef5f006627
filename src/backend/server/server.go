// Package server wraps the unified client behind a single HTTP route, so
// schedulers and home automation can trigger playback with one POST.
package server

import (
	"errors"
	"net/http"

	helpers "lgsignage/src/middleware/helpers"
	unified "lgsignage/src/middleware/modules/unified"
	solver "lgsignage/src/middleware/solver"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type PlayRequest struct {
	Host        string `json:"host" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Playlist    string `json:"playlist" binding:"required"`
	Port        int    `json:"port"`
	DisplayType string `json:"displayType"`
	MaxAttempts int    `json:"maxAttempts"`
}

func Run(addr string) error {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.POST("/play", handlePlay)

	log.Infof("Signage API listening on %s", addr)
	return router.Run(addr)
}

func handlePlay(c *gin.Context) {
	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	log.Infof("Play request for %s: %s", req.Host, req.Playlist)

	// No interactive fallback here: a server cannot answer a captcha prompt,
	// so legacy logins live or die by OCR and the retry budget.
	client := unified.NewClient(helpers.NewColorizedLogger(false), req.Host, req.Password)
	client.Solver = solver.NewOCRSolver()
	client.CacheIdentity = true
	if req.MaxAttempts > 0 {
		client.MaxAttempts = req.MaxAttempts
	}

	if req.DisplayType != "" && req.Port > 0 {
		displayType, ok := unified.ParseDisplayType(req.DisplayType)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "displayType must be modern or legacy"})
			return
		}
		client.PinIdentity(displayType, req.Port)
	}

	if err := client.Login(); err != nil {
		log.Errorf("Login failed for %s: %v", req.Host, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed", "reason": err.Error()})
		return
	}

	if err := client.Play(req.Playlist); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, helpers.ErrReferenceNotFound) {
			status = http.StatusNotFound
		}
		log.Errorf("Playback failed for %s: %v", req.Host, err)
		c.JSON(status, gin.H{"error": "Failed to play playlist", "reason": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"host":        req.Host,
		"playlist":    req.Playlist,
		"displayType": client.Identity.Type.String(),
	})
}
