package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	readingdomain "github.com/enervue/enervue/internal/reading/domain"
)

const defaultReadingsLimit = 100

// ImportReadings accepts a CSV upload either as a multipart "file" field or
// as a raw request body. Granularity comes from the form or query string.
func (s *Server) ImportReadings(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	content, filename, err := readImportContent(c)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	granularity := strings.TrimSpace(c.PostForm("granularity"))
	if granularity == "" {
		granularity = strings.TrimSpace(c.Query("granularity"))
	}

	result, err := s.readingSvc.ImportCSV(c.Request.Context(), readingdomain.ImportCSVRequest{
		OwnerUserID: ownerID,
		PropertyID:  c.Param("id"),
		Filename:    filename,
		Granularity: granularity,
		Content:     content,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Set("import_id", result.ImportID)
	c.JSON(http.StatusOK, result)
}

func (s *Server) ListReadings(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_time", "invalid value"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_time", "invalid value"))
		return
	}
	limit, err := parseOptionalInt64(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid value"))
		return
	}

	req := readingdomain.ListRequest{
		OwnerUserID: ownerID,
		PropertyID:  c.Param("id"),
		From:        from,
		To:          to,
		Granularity: strings.TrimSpace(c.Query("granularity")),
		Limit:       defaultReadingsLimit,
	}
	if limit != nil && *limit > 0 {
		req.Limit = int(*limit)
	}

	readings, err := s.readingSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"readings": readings})
}

func (s *Server) ListImports(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	imports, err := s.readingSvc.ListImports(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imports": imports})
}

func readImportContent(c *gin.Context) ([]byte, string, error) {
	file, err := c.FormFile("file")
	if err == nil {
		handle, err := file.Open()
		if err != nil {
			return nil, "", err
		}
		defer handle.Close()

		content, err := io.ReadAll(handle)
		if err != nil {
			return nil, "", err
		}
		return content, file.Filename, nil
	}

	content, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, "", err
	}
	return content, "", nil
}
