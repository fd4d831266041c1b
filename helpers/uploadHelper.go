package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// MaxUploadSize caps any single uploaded file at 50MB.
const MaxUploadSize = 50 << 20

var ErrFileTooLarge = errors.New("file exceeds the 50MB upload limit")

func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

// EnsureUploadDir creates the local uploads directory if it is missing.
func EnsureUploadDir() error {
	return os.MkdirAll(UploadDir(), 0o755)
}

func useCloudinary() bool {
	return os.Getenv("CLOUDINARY_URL") != ""
}

// SaveProfileFile stores a profile image or resume under a deterministic
// name (<userID>-<base><ext>) so a re-upload overwrites the previous file.
// Returns the stored path (/uploads/...) or the Cloudinary URL.
func SaveProfileFile(file multipart.File, fileHeader *multipart.FileHeader, userID, base string) (string, error) {
	if fileHeader.Size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	ext := filepath.Ext(fileHeader.Filename)
	name := fmt.Sprintf("%s-%s%s", userID, base, ext)

	if useCloudinary() {
		return uploadToCloudinary(file, "skillsync_profiles", strings.TrimSuffix(name, ext))
	}
	return saveToDisk(file, name)
}

// SaveChatFile stores a message attachment under a unique name so
// concurrent sends never collide.
func SaveChatFile(file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	ext := filepath.Ext(fileHeader.Filename)
	name := uuid.NewString() + ext

	if useCloudinary() {
		return uploadToCloudinary(file, "skillsync_chat", strings.TrimSuffix(name, ext))
	}
	return saveToDisk(file, name)
}

func saveToDisk(file multipart.File, name string) (string, error) {
	if err := EnsureUploadDir(); err != nil {
		return "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(UploadDir(), name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func uploadToCloudinary(file multipart.File, folder, publicID string) (string, error) {
	// Reset file pointer before upload.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Println("Cloudinary init error:", err)
		return "", err
	}

	uploadResult, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
		PublicID:     publicID,
	})
	if err != nil {
		log.Println("Cloudinary upload error:", err)
		return "", err
	}

	return uploadResult.SecureURL, nil
}
