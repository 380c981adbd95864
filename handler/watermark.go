package handler

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"mission_manager/constants"
	"mission_manager/database"
	"mission_manager/helper"
	"mission_manager/model"
	"mission_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateWatermark stamps the message onto the uploaded image, stores the
// record and returns the rendered PNG.
func CreateWatermark(c *fiber.Ctx) error {
	user, err := helper.GetUserFromToken(c)
	if err != nil || user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, err)
	}

	fileHeader, err := c.FormFile("fileimage")
	if err != nil {
		return utils.ValidationErrorResponse(c, utils.FieldError("fileimage", "field fileimage can not be blank"))
	}

	message := c.FormValue("message")
	if len(message) < 10 || len(message) > 20 {
		return utils.ValidationErrorResponse(c, utils.FieldError("message", constants.WATERMARK_MESSAGE_LEN))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return utils.ValidationErrorResponse(c, utils.FieldError("fileimage", "must be a valid image"))
	}

	rendered, err := utils.RenderWatermark(src, message)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	url := ""
	if os.Getenv("CLOUDINARY_CLOUD_NAME") != "" {
		cld := helper.InitCloudinary()
		resp, err := cld.Upload.Upload(context.Background(), bytes.NewReader(rendered), uploader.UploadParams{
			Folder:   "lunar_watermarks",
			PublicID: "wm-" + uuid.New().String()[:8],
		})
		if err != nil {
			log.Printf("failed to upload watermark: %v", err)
		} else {
			url = resp.SecureURL
		}
	}

	record := model.WatermarkedImage{
		Url:     url,
		Message: message,
		UserID:  user.ID,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Status(fiber.StatusOK).Send(rendered)
}

// GenerateUploadSignature issues a signed ticket for direct client uploads
// of mission imagery.
func GenerateUploadSignature(c *fiber.Ctx) error {
	user, err := helper.GetUserFromToken(c)
	if err != nil || user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, err)
	}

	type sigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}

	var params sigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid params", err)
	}

	timestamp := time.Now().Unix()

	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = fmt.Sprintf("%d", timestamp)

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// raw values, alphabetical order, no URL encoding
	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}
