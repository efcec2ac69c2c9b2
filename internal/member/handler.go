package member

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/samcomo/dbz-api-server/internal/config"
	sharedContext "github.com/samcomo/dbz-api-server/internal/shared/context"
	"github.com/samcomo/dbz-api-server/internal/shared/handler"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
	"github.com/samcomo/dbz-api-server/internal/shared/storage"
)

const (
	profileImageField = "profileImage"
	// room for multipart boundaries and part headers on top of the image itself
	multipartOverheadBytes = 64 << 10
)

type MemberHandler struct {
	memberService *MemberService
	cfg           *config.Config
}

func NewMemberHandler(memberService *MemberService, cfg *config.Config) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		cfg:           cfg,
	}
}

func (h *MemberHandler) Register(c *gin.Context) {
	var request RegisterRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := h.memberService.Register(c.Request.Context(), &request); err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{})
}

func (h *MemberHandler) GetMyInfo(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetMyInfo(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) UpdateLocation(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request LocationRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := h.memberService.UpdateLocation(c.Request.Context(), memberID, &request); err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// UpdateProfileImage accepts a multipart form with the image in the "profileImage" field.
// The image type is detected from the file content; the client supplied Content-Type is ignored.
func (h *MemberHandler) UpdateProfileImage(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	log := logger.FromContext(c.Request.Context())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.ProfileImage.MaxSizeBytes+multipartOverheadBytes)

	fileHeader, err := c.FormFile(profileImageField)
	if err != nil {
		log.Warn("프로필 이미지 파일 없음", "memberID", memberID, "error", err)
		handler.RespondServiceError(c, ErrInvalidProfileImage)
		return
	}

	if fileHeader.Size <= 0 || fileHeader.Size > h.cfg.ProfileImage.MaxSizeBytes {
		log.Warn("허용되지 않는 프로필 이미지 크기", "memberID", memberID, "size", fileHeader.Size)
		handler.RespondServiceError(c, ErrInvalidProfileImage)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("프로필 이미지 파일 열기 실패", "memberID", memberID, "error", err)
		handler.RespondServiceError(c, err)
		return
	}
	defer file.Close()

	contentType, err := detectImageType(file)
	if err != nil {
		log.Error("프로필 이미지 형식 확인 실패", "memberID", memberID, "error", err)
		handler.RespondServiceError(c, err)
		return
	}
	if !h.cfg.IsAllowedImageType(contentType) {
		log.Warn("허용되지 않는 프로필 이미지 형식",
			"memberID", memberID,
			"content_type", contentType,
			"declared_content_type", fileHeader.Header.Get("Content-Type"),
		)
		handler.RespondServiceError(c, ErrInvalidProfileImage)
		return
	}

	image := storage.ImageFile{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: contentType,
		Filename:    fileHeader.Filename,
	}

	if err := h.memberService.UpdateProfileImage(c.Request.Context(), memberID, image); err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// detectImageType sniffs the MIME type from the leading bytes and rewinds the file
func detectImageType(file multipart.File) (string, error) {
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind image: %w", err)
	}
	return detected.String(), nil
}
