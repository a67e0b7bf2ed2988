package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/export"
	"github.com/polkiloo/marketplace/internal/metrics"
)

var attachmentHeaders = []string{"Content-Type", "Content-Disposition", "Content-Description", "Access-Control-Allow-Origin"}

// writeDataset streams dataset as a CSV attachment, 204 when it has no rows.
// kind labels the exported rows metric.
func writeDataset(c *gin.Context, kind string, ds *model.Dataset) {
	if ds.Len() == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Type", "text/csv; charset=UTF-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(ds.Name)))
	c.Header("Content-Description", "File Transfer")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Status(http.StatusOK)

	written, err := export.Write(c.Writer, ds)
	metrics.ExportedRowsTotal.WithLabelValues(kind).Add(float64(written))
	if err == nil {
		return
	}

	if c.Writer.Written() {
		_ = c.Error(err)
		c.Abort()
		return
	}
	for _, h := range attachmentHeaders {
		c.Writer.Header().Del(h)
	}
	writeError(c, err)
}
