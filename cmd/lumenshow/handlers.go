package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// handleHome serves the main web interface.
func (d *ShowDaemon) handleHome(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"show":    d.config.Show.Name,
		"version": Version,
	})
}

// handleGetStatus returns the current clock and primary-sequence status.
func (d *ShowDaemon) handleGetStatus(c *gin.Context) {
	status, err := d.socketClient.GetStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// handlePlay resumes playback of the primary sequence.
func (d *ShowDaemon) handlePlay(c *gin.Context) {
	if err := d.socketClient.Play(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handlePause halts playback at the current position.
func (d *ShowDaemon) handlePause(c *gin.Context) {
	if err := d.socketClient.Pause(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSeek jumps playback to a requested time in seconds.
func (d *ShowDaemon) handleSeek(c *gin.Context) {
	var req struct {
		Seconds float64 `json:"seconds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := d.socketClient.Seek(req.Seconds); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSetBpm changes the playback clock's tempo.
func (d *ShowDaemon) handleSetBpm(c *gin.Context) {
	var req struct {
		Bpm float64 `json:"bpm" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := d.socketClient.SetBpm(req.Bpm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSetBeatsPerBar changes the playback clock's time signature.
func (d *ShowDaemon) handleSetBeatsPerBar(c *gin.Context) {
	var req struct {
		Beats uint32 `json:"beats" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := d.socketClient.SetBeatsPerBar(req.Beats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSetPrimary sets the sequence driving the playback clock.
func (d *ShowDaemon) handleSetPrimary(c *gin.Context) {
	var req struct {
		Handle string `json:"handle" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := d.socketClient.SetPrimary(req.Handle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleGetFixtures lists the show's configured fixtures.
func (d *ShowDaemon) handleGetFixtures(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fixtures": d.coreEngine.Fixtures()})
}

// handleAddEffect submits a raw JSON-encoded effect authoring request.
func (d *ShowDaemon) handleAddEffect(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := d.socketClient.AddEffect(string(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp.Data)
}

// handleRemove deletes a handle-addressed sequence or effect.
func (d *ShowDaemon) handleRemove(c *gin.Context) {
	h := c.Param("handle")
	if err := d.socketClient.Remove(h); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleGetEvents returns the most recent entries from the event log.
func (d *ShowDaemon) handleGetEvents(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = 50
	}

	events, err := d.coreEngine.RecentEvents(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}
