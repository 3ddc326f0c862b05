package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/catalog"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
	"github.com/reelstack/dvdrental-backend/internal/validation"
)

type CreateDvdInput struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	ReleaseYear       int             `json:"release_year"`
	DurationMinutes   int             `json:"duration_minutes"`
	PosterURL         string          `json:"poster_url"`
	RentalPricePerDay decimal.Decimal `json:"rental_price_per_day"`
	Copies            int             `json:"copies"`
	GenreIDs          []uuid.UUID     `json:"genre_ids"`
}

type UpdateDvdInput struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	ReleaseYear     *int    `json:"release_year"`
	DurationMinutes *int    `json:"duration_minutes"`
	PosterURL       *string `json:"poster_url"`
}

// DvdService owns catalog metadata. Copy counts are deliberately absent
// from UpdateDvdInput: the only paths that move them are AddCopies and the
// lifecycles, all of which go through the inventory service.
type DvdService interface {
	Create(ctx context.Context, in CreateDvdInput) (*types.Dvd, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Dvd, error)
	List(ctx context.Context) ([]*types.Dvd, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateDvdInput) error
	AddCopies(ctx context.Context, id uuid.UUID, count int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type dvdService struct {
	db        *gorm.DB
	log       *logger.Logger
	dvdRepo   catalogrepo.DvdRepo
	genreRepo catalogrepo.GenreRepo
	inventory InventoryService
	notifier  AvailabilityNotifier
}

func NewDvdService(
	db *gorm.DB,
	baseLog *logger.Logger,
	dvdRepo catalogrepo.DvdRepo,
	genreRepo catalogrepo.GenreRepo,
	inventory InventoryService,
	notifier AvailabilityNotifier,
) DvdService {
	return &dvdService{
		db:        db,
		log:       baseLog.With("service", "DvdService"),
		dvdRepo:   dvdRepo,
		genreRepo: genreRepo,
		inventory: inventory,
		notifier:  notifier,
	}
}

func (ds *dvdService) Create(ctx context.Context, in CreateDvdInput) (*types.Dvd, error) {
	if err := ds.validateDetails(in.Title, in.Description, in.ReleaseYear, in.DurationMinutes); err != nil {
		return nil, err
	}
	if err := validation.CheckDvdPrice(in.RentalPricePerDay); err != nil {
		return nil, err
	}
	if err := validation.CheckDvdCopies(in.Copies); err != nil {
		return nil, err
	}

	var created *types.Dvd
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := ds.genreRepo.GetByIDs(ctx, tx, in.GenreIDs)
		if err != nil {
			return err
		}
		if len(genres) != len(in.GenreIDs) {
			return apierr.Validation("one or more genres do not exist")
		}

		dvd := &types.Dvd{
			Title:             in.Title,
			Description:       in.Description,
			ReleaseYear:       in.ReleaseYear,
			DurationMinutes:   in.DurationMinutes,
			PosterURL:         in.PosterURL,
			RentalPricePerDay: in.RentalPricePerDay,
			CopiesTotal:       in.Copies,
			CopiesAvailable:   in.Copies,
			Available:         in.Copies > 0,
		}
		for _, g := range genres {
			dvd.Genres = append(dvd.Genres, *g)
		}
		if _, err := ds.dvdRepo.Create(ctx, tx, []*types.Dvd{dvd}); err != nil {
			return err
		}
		created = dvd
		return nil
	})
	if err != nil {
		return nil, err
	}

	ds.log.Info("DVD created", "dvd_id", created.ID, "title", created.Title, "copies", created.CopiesTotal)
	return created, nil
}

func (ds *dvdService) Get(ctx context.Context, id uuid.UUID) (*types.Dvd, error) {
	dvd, err := ds.dvdRepo.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("dvd %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return dvd, nil
}

func (ds *dvdService) List(ctx context.Context) ([]*types.Dvd, error) {
	return ds.dvdRepo.List(ctx, nil)
}

func (ds *dvdService) Update(ctx context.Context, id uuid.UUID, in UpdateDvdInput) error {
	fields := map[string]any{}
	if in.Title != nil {
		if err := validation.CheckDvdTitle(*in.Title); err != nil {
			return err
		}
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		if err := validation.CheckDvdDescription(*in.Description); err != nil {
			return err
		}
		fields["description"] = *in.Description
	}
	if in.ReleaseYear != nil {
		if err := validation.CheckDvdReleaseYear(*in.ReleaseYear); err != nil {
			return err
		}
		fields["release_year"] = *in.ReleaseYear
	}
	if in.DurationMinutes != nil {
		if err := validation.CheckDvdDuration(*in.DurationMinutes); err != nil {
			return err
		}
		fields["duration_minutes"] = *in.DurationMinutes
	}
	if in.PosterURL != nil {
		fields["poster_url"] = *in.PosterURL
	}
	if len(fields) == 0 {
		return apierr.Validation("no fields to update")
	}

	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ds.Get(ctx, id); err != nil {
			return err
		}
		return ds.dvdRepo.UpdateDetails(ctx, tx, id, fields)
	})
}

// AddCopies restocks a title: the total grows and the new copies are
// released into the ledger in the same transaction.
func (ds *dvdService) AddCopies(ctx context.Context, id uuid.UUID, count int) error {
	if count <= 0 {
		return apierr.Validation("copy count must be greater than zero")
	}

	var available *types.Dvd
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ds.dvdRepo.UpdateDetails(ctx, tx, id, map[string]any{
			"copies_total": gorm.Expr("copies_total + ?", count),
		}); err != nil {
			return err
		}
		dvd, becameAvailable, err := ds.inventory.Increase(ctx, tx, id, count)
		if err != nil {
			return err
		}
		if becameAvailable {
			available = dvd
		}
		return nil
	})
	if err != nil {
		return err
	}

	ds.log.Info("Copies added", "dvd_id", id, "count", count)
	if available != nil {
		ds.notifier.NotifyAvailable(ctx, available.ID, available.Title)
	}
	return nil
}

func (ds *dvdService) Delete(ctx context.Context, id uuid.UUID) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dvd, err := ds.dvdRepo.GetByID(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("dvd %s not found", id)
		}
		if err != nil {
			return err
		}
		if dvd.CopiesAvailable != dvd.CopiesTotal {
			return apierr.Validation("dvd %q still has copies out on loan or reserved", dvd.Title)
		}
		return ds.dvdRepo.Delete(ctx, tx, id)
	})
}

func (ds *dvdService) validateDetails(title, description string, year, duration int) error {
	if err := validation.CheckDvdTitle(title); err != nil {
		return err
	}
	if err := validation.CheckDvdDescription(description); err != nil {
		return err
	}
	if err := validation.CheckDvdReleaseYear(year); err != nil {
		return err
	}
	return validation.CheckDvdDuration(duration)
}
