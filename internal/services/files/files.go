// Package files содержит бизнес-логику медиа-слотов года выпуска:
// добавление и очистка слотов, подписи и выдача с учётом премиум-доступа.
package files

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/auto-catalog/internal/lib/drive"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// Repository определяет методы для работы с файлами в хранилище.
type Repository interface {
	// GetFileByYearID возвращает строку файлов года выпуска.
	GetFileByYearID(ctx context.Context, yearID int) (*models.File, error)
	// UpsertFileSlot записывает ссылку в слот и фиксирует обращение.
	UpsertFileSlot(ctx context.Context, yearID int, slot models.Slot, link string, userID int64) (*models.File, error)
	// ClearFileSlot очищает слот года выпуска.
	ClearFileSlot(ctx context.Context, yearID int, slot models.Slot) (*models.File, error)
	// UpdateFileCaption записывает подпись к файлам года.
	UpdateFileCaption(ctx context.Context, yearID int, caption *string) (*models.File, error)
	// GetYearContext возвращает марку, модель и значение года.
	GetYearContext(ctx context.Context, yearID int) (brand, model string, year int, err error)
	// InsertAccessStat фиксирует обращение к файлам года.
	InsertAccessStat(ctx context.Context, userID int64, yearID int, slot models.Slot) error
}

// AccessChecker определяет проверку премиум-доступа.
type AccessChecker interface {
	// CanSeePremium сообщает, доступны ли пользователю премиум-материалы.
	CanSeePremium(ctx context.Context, userID int64) (bool, error)
}

// Service реализует бизнес-логику медиа-слотов.
type Service struct {
	repo   Repository
	access AccessChecker
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, access AccessChecker, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		access: access,
		log:    log,
	}
}

// AttachSlot сохраняет ссылку Google Drive в слот года выпуска.
// Ссылка нормализуется к форме скачивания; повторная запись замещает
// содержимое слота. Возвращает актуальную строку файлов.
func (s *Service) AttachSlot(ctx context.Context, yearID int, slot models.Slot, driveURL string, userID int64) (*models.File, error) {
	link, err := drive.ToDownloadLink(driveURL)
	if err != nil {
		return nil, err
	}

	file, err := s.repo.UpsertFileSlot(ctx, yearID, slot, link, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info("file slot attached",
		slog.Int("year_id", yearID),
		slog.String("slot", string(slot)),
		sl.UserID(userID))
	return file, nil
}

// ClearSlot очищает слот года выпуска.
func (s *Service) ClearSlot(ctx context.Context, yearID int, slot models.Slot) (*models.File, error) {
	file, err := s.repo.ClearFileSlot(ctx, yearID, slot)
	if err != nil {
		return nil, err
	}
	s.log.Info("file slot cleared",
		slog.Int("year_id", yearID),
		slog.String("slot", string(slot)))
	return file, nil
}

// UpdateCaption записывает подпись к файлам года выпуска.
func (s *Service) UpdateCaption(ctx context.Context, yearID int, caption string) (*models.File, error) {
	return s.repo.UpdateFileCaption(ctx, yearID, &caption)
}

// ListByYear возвращает файлы года с учётом премиум-доступа запрашивающего.
// Премиум-слоты вычищаются из ответа для обычных пользователей; фото-слоты
// переписываются на путь серверного прокси. Обращение фиксируется в статистике.
func (s *Service) ListByYear(ctx context.Context, yearID int, userID int64) (*models.YearFiles, error) {
	brand, model, year, err := s.repo.GetYearContext(ctx, yearID)
	if err != nil {
		return nil, err
	}

	canSeePremium, err := s.access.CanSeePremium(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &models.YearFiles{
		Brand: brand,
		Model: model,
		Year:  year,
		Files: []models.File{},
	}

	file, err := s.repo.GetFileByYearID(ctx, yearID)
	if err != nil {
		// Год без файлов — пустой список, не ошибка
		if errors.Is(err, repository.ErrNotFound) {
			return result, nil
		}
		return nil, err
	}

	visible := models.File{
		ID:      file.ID,
		YearID:  file.YearID,
		Caption: file.Caption,
	}
	if file.Photo != nil {
		link := drive.ToViewLink(*file.Photo)
		visible.Photo = &link
	}
	if file.Pdf != nil {
		visible.Pdf = file.Pdf
	}
	if canSeePremium {
		if file.PremiumPhoto != nil {
			link := drive.ToViewLink(*file.PremiumPhoto)
			visible.PremiumPhoto = &link
		}
		if file.PremiumPdf != nil {
			visible.PremiumPdf = file.PremiumPdf
		}
	}
	result.Files = append(result.Files, visible)

	if err := s.repo.InsertAccessStat(ctx, userID, yearID, models.SlotPhoto); err != nil {
		s.log.Warn("failed to record file access", sl.Err(err), sl.UserID(userID))
	}

	return result, nil
}
