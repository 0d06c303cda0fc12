// Package drive содержит разбор и нормализацию ссылок Google Drive.
// Внешние ссылки приводятся к форме для скачивания, а изображения —
// к пути серверного прокси, чтобы обойти CORS-ограничения браузера.
package drive

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidLink возвращается на ссылку, из которой нельзя извлечь File ID.
var ErrInvalidLink = errors.New("invalid google drive link")

var (
	idParamRe   = regexp.MustCompile(`[?&]id=([^&]+)`)
	directImgRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
)

// ExtractFileID извлекает File ID из ссылки Google Drive.
// Поддерживаются формы .../file/d/<id>/... и ...?id=<id>.
func ExtractFileID(link string) (string, error) {
	if link == "" {
		return "", ErrInvalidLink
	}
	if m := idParamRe.FindStringSubmatch(link); m != nil {
		return m[1], nil
	}
	if _, rest, ok := strings.Cut(link, "drive.google.com/file/d/"); ok {
		id, _, _ := strings.Cut(rest, "/")
		if id != "" {
			return id, nil
		}
	}
	return "", ErrInvalidLink
}

// DownloadURL возвращает прямую ссылку на скачивание по File ID.
func DownloadURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?export=download&id=%s", fileID)
}

// ViewURL возвращает ссылку формы export=view по File ID.
func ViewURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?export=view&id=%s", fileID)
}

// ThumbnailURL возвращает ссылку thumbnail-эндпоинта по File ID.
// Для изображений эта форма наиболее устойчива к страницам-предупреждениям.
func ThumbnailURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w1920", fileID)
}

// ToDownloadLink приводит пользовательскую ссылку Google Drive
// к форме для скачивания.
func ToDownloadLink(link string) (string, error) {
	fileID, err := ExtractFileID(link)
	if err != nil {
		return "", err
	}
	return DownloadURL(fileID), nil
}

// ToViewLink приводит ссылку на изображение к пути серверного прокси.
// Прямые ссылки на изображения вне Google Drive возвращаются как есть;
// ссылка без распознаваемого File ID возвращается без изменений.
func ToViewLink(link string) string {
	if link == "" {
		return ""
	}
	if directImgRe.MatchString(link) && !strings.Contains(link, "drive.google.com") {
		return link
	}
	fileID, err := ExtractFileID(link)
	if err != nil {
		return link
	}
	return "/api/v1/files/image/" + fileID
}
