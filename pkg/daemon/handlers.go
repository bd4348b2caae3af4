package daemon

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"battwatch/pkg/config"
	"battwatch/pkg/version"
)

func getStatus(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, watcher.Snapshot())
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func setLowThreshold(c *gin.Context) {
	var l int
	if err := c.BindJSON(&l); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if l < 0 || l > 100 {
		err := fmt.Errorf("low threshold must be between 0 and 100, got %d", l)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if l >= conf.HighThreshold() {
		err := fmt.Errorf("low threshold must be below the high threshold (%d), got %d", conf.HighThreshold(), l)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetLowThreshold(l)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set low threshold to %d", l)
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set low threshold to %d%%", l))
}

func setHighThreshold(c *gin.Context) {
	var h int
	if err := c.BindJSON(&h); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if h < 0 || h > 100 {
		err := fmt.Errorf("high threshold must be between 0 and 100, got %d", h)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if h <= conf.LowThreshold() {
		err := fmt.Errorf("high threshold must be above the low threshold (%d), got %d", conf.LowThreshold(), h)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetHighThreshold(h)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set high threshold to %d", h)
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set high threshold to %d%%", h))
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

// getEvents streams status.change events as SSE until the client
// disconnects.
func getEvents(c *gin.Context) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
