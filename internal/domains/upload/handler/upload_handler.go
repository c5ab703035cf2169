package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"blognest-backend/internal/domains/upload"
	"blognest-backend/internal/shared/backenderr"
	"blognest-backend/internal/shared/response"
)

type UploadHandler struct {
	service upload.Service
}

func NewUploadHandler(svc upload.Service) *UploadHandler {
	return &UploadHandler{service: svc}
}

// Upload - POST /v1/admin/uploads (multipart field "file")
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file field")
		return
	}

	f, err := openFile(fileHeader)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer f.Body.(multipart.File).Close()

	result, err := h.service.UploadImage(c.Request.Context(), *f, c.DefaultPostForm("category", "posts"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// UploadBatch - POST /v1/admin/uploads/batch (multipart field "files")
func (h *UploadHandler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		response.BadRequest(c, "missing files field")
		return
	}

	files := make([]upload.File, 0, len(headers))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fh := range headers {
		f, err := openFile(fh)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		opened = append(opened, f.Body.(multipart.File))
		files = append(files, *f)
	}

	results, failures := h.service.UploadImages(c.Request.Context(), files, c.DefaultPostForm("category", "posts"))

	errs := make([]gin.H, 0, len(failures))
	for _, fe := range failures {
		errs = append(errs, gin.H{
			"name":  fe.Name,
			"code":  upload.ToErrorCode(fe.Err),
			"error": fe.Err.Error(),
		})
	}

	response.Success(c, http.StatusOK, gin.H{
		"uploaded": results,
		"failed":   errs,
	})
}

func openFile(fh *multipart.FileHeader) (*upload.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &upload.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, nil
}

func (h *UploadHandler) respondError(c *gin.Context, err error) {
	status := upload.ToHTTPStatus(err)
	msg := err.Error()
	if status == 500 {
		msg = backenderr.UserMessage(err)
	}
	response.ErrorResponse(c, status, upload.ToErrorCode(err), msg)
}
