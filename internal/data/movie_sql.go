package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinelog/movieapp/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqlMovieRepo struct {
	db  *gorm.DB
	log *log.Helper
}

func (r *sqlMovieRepo) List(ctx context.Context, query *biz.MovieQuery) ([]*biz.Movie, error) {
	db := r.db.WithContext(ctx).Model(&movieRecord{})

	if query.Watched != nil {
		db = db.Where("watched = ?", *query.Watched)
	}
	if query.SortByRating {
		db = db.Order("rating DESC NULLS LAST").Order("created_at DESC")
	} else {
		db = db.Order("created_at ASC").Order("id ASC")
	}

	var records []movieRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	movies := make([]*biz.Movie, 0, len(records))
	for i := range records {
		movies = append(movies, records[i].toBiz())
	}
	return movies, nil
}

func (r *sqlMovieRepo) Get(ctx context.Context, id string) (*biz.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, biz.ErrMovieNotFound
	}

	var record movieRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return record.toBiz(), nil
}

func (r *sqlMovieRepo) Create(ctx context.Context, movie *biz.Movie) (*biz.Movie, error) {
	// UUID v7: time-ordered
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate movie ID: %w", err)
	}

	record := &movieRecord{
		ID:        id.String(),
		Title:     movie.Title,
		Year:      movie.Year,
		Genre:     movie.Genre,
		Watched:   movie.Watched,
		Rating:    movie.Rating,
		CreatedAt: movie.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return record.toBiz(), nil
}

func (r *sqlMovieRepo) Update(ctx context.Context, id string, update *biz.MovieUpdate) (*biz.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, biz.ErrMovieNotFound
	}

	var record movieRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		record.Watched = update.Watched
		if update.Title != nil {
			record.Title = *update.Title
		}
		if update.Year != nil {
			record.Year = update.Year
		}
		if update.Genre != nil {
			record.Genre = update.Genre
		}
		if update.Rating != nil {
			record.Rating = update.Rating
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, translateGormErr(err)
	}

	return record.toBiz(), nil
}

func (r *sqlMovieRepo) Delete(ctx context.Context, id string) (*biz.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, biz.ErrMovieNotFound
	}

	var record movieRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		return tx.Delete(&movieRecord{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translateGormErr(err)
	}

	return record.toBiz(), nil
}

func translateGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return biz.ErrMovieNotFound
	}
	return fmt.Errorf("database: %w", err)
}
