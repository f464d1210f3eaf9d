package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pathObjectID parses an ObjectID path parameter; a malformed id is a 400
// before anything touches the store.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		respondBadRequest(c, fmt.Sprintf("invalid %s", name))
		return primitive.NilObjectID, false
	}
	return id, true
}

// formUpload opens a multipart file part as a storage upload. The returned
// close func must be called once the upload has been consumed.
func formUpload(c *gin.Context, field string) (*service.Upload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", field, err)
	}

	upload := &service.Upload{
		Reader:      file,
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
	return upload, func() { _ = file.Close() }, nil
}

// optionalFormUpload is formUpload for parts that may be absent
func optionalFormUpload(c *gin.Context, field string) (*service.Upload, func(), error) {
	upload, closeFn, err := formUpload(c, field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, nil, err
	}
	return upload, closeFn, nil
}
